// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
)

// SheetRef identifies a block of rows in a spreadsheet. Public sources set
// URL (a share link or CSV export link); API sources set SpreadsheetID and
// Range in A1 notation.
type SheetRef struct {
	URL           string
	SpreadsheetID string
	Range         string
}

// String returns a human-readable description of the reference.
func (r SheetRef) String() string {
	if r.URL != "" {
		return r.URL
	}
	return r.SpreadsheetID + "!" + r.Range
}

// RowSource reads a header row and data rows from a spreadsheet.
type RowSource interface {
	ReadRows(ctx context.Context, ref SheetRef) (header []string, records [][]string, err error)
}

// Snapshot is the source data captured by a sync.
type Snapshot struct {
	Source   string
	Vehicles []model.Vehicle
	Rates    []model.RateRow
}

// SyncInfo describes the stored snapshot.
type SyncInfo struct {
	SyncedAt     time.Time
	Source       string
	VehicleCount int
	TierCount    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Snapshot operations
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	GetLastSync(ctx context.Context) (*SyncInfo, error)

	// Vehicle operations
	GetVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, modelName, subModel string) (*model.Vehicle, error)

	// Rate operations
	GetRateRows(ctx context.Context) ([]model.RateRow, error)
	GetRateTable(ctx context.Context) (*ratetable.Table, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
