// Package storage keeps the last synced catalog and rate table in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/service"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrEmptySlice      = errors.New("slice cannot be empty")
	ErrInvalidVehicle  = errors.New("invalid vehicle")
	ErrInvalidRateRow  = errors.New("invalid rate row")
	ErrDuplicateRecord = errors.New("duplicate record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSnapshot(snapshot service.Snapshot) error {
	if len(snapshot.Vehicles) == 0 {
		return fmt.Errorf("%w: vehicles", ErrEmptySlice)
	}
	if len(snapshot.Rates) == 0 {
		return fmt.Errorf("%w: rates", ErrEmptySlice)
	}

	for i := range snapshot.Vehicles {
		if err := validateVehicle(&snapshot.Vehicles[i]); err != nil {
			return fmt.Errorf("vehicle at index %d: %w", i, err)
		}
	}

	tiers := make(map[float64]struct{}, len(snapshot.Rates))
	for i, row := range snapshot.Rates {
		if err := validateRateRow(row); err != nil {
			return fmt.Errorf("rate row at index %d: %w", i, err)
		}
		if _, dup := tiers[row.TierPercent]; dup {
			return fmt.Errorf("%w: tier %v", ErrDuplicateRecord, row.TierPercent)
		}
		tiers[row.TierPercent] = struct{}{}
	}
	return nil
}

func validateVehicle(v *model.Vehicle) error {
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("%w: missing model", ErrInvalidVehicle)
	}
	if math.IsNaN(v.Price) || math.IsInf(v.Price, 0) || v.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidVehicle)
	}
	return nil
}

func validateRateRow(row model.RateRow) error {
	if math.IsNaN(row.TierPercent) || row.TierPercent < 0 || row.TierPercent > 100 {
		return fmt.Errorf("%w: tier %v outside 0-100", ErrInvalidRateRow, row.TierPercent)
	}
	for period, rate := range row.Rates {
		if !period.Valid() {
			return fmt.Errorf("%w: period %d not allowed", ErrInvalidRateRow, int(period))
		}
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			return fmt.Errorf("%w: rate for %s must be a non-negative number", ErrInvalidRateRow, period)
		}
	}
	return nil
}
