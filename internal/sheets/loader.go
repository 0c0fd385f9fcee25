package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/Veraticus/carquote/internal/service"
)

// Sync steps reported to the progress callback, in order.
const (
	StepReadCatalog = "reading vehicle catalog"
	StepReadRates   = "reading rate table"
	StepValidate    = "validating data"
)

// SyncSteps lists every step FetchSnapshot reports.
var SyncSteps = []string{StepReadCatalog, StepReadRates, StepValidate}

// FetchSnapshot reads the catalog and rate table from src and validates
// both before returning them. progress may be nil.
func FetchSnapshot(ctx context.Context, src service.RowSource, catalogRef, ratesRef service.SheetRef, progress func(step string)) (*service.Snapshot, error) {
	report := func(step string) {
		if progress != nil {
			progress(step)
		}
	}

	report(StepReadCatalog)
	catHeader, catRows, err := src.ReadRows(ctx, catalogRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle catalog: %w", err)
	}

	report(StepReadRates)
	rateHeader, rateRows, err := src.ReadRows(ctx, ratesRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate table: %w", err)
	}

	report(StepValidate)
	cat, err := catalog.Parse(catHeader, catRows)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle catalog: %w", err)
	}

	table, err := ratetable.Parse(rateHeader, rateRows)
	if err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}

	return &service.Snapshot{
		Source:   catalogRef.String() + ", " + ratesRef.String(),
		Vehicles: cat.Vehicles(),
		Rates:    table.Rows(),
	}, nil
}

// NewRowSource returns the reader the configuration calls for.
func NewRowSource(ctx context.Context, config Config, logger *slog.Logger) (service.RowSource, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.Mode() == ModeExport {
		return NewExportReader(config, nil, logger), nil
	}
	return NewAPIReader(ctx, config, logger)
}
