package storage

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testSnapshot() service.Snapshot {
	return service.Snapshot{
		Source: "test",
		Vehicles: []model.Vehicle{
			{Model: "Seal", SubModel: "AWD", Price: 1_599_000},
			{Model: "Dolphin", SubModel: "Standard", Price: 699_900, ImageURL: "https://example.com/d.png"},
			{Model: "Seal", SubModel: "AWD", Price: 1},
		},
		Rates: []model.RateRow{
			{TierPercent: 30, Rates: map[model.Period]float64{model.Period48: 1, model.Period60: 1.2, model.Period72: 1.5, model.Period84: 1.8}},
			{TierPercent: 10, Rates: map[model.Period]float64{model.Period48: 2.49, model.Period60: 2.69}},
			{TierPercent: 5, Rates: map[model.Period]float64{}},
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))

	vehicles, err := store.GetVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2, "repeated model and sub model keeps the first row")
	assert.Equal(t, "Seal", vehicles[0].Model)
	assert.InDelta(t, 1_599_000, vehicles[0].Price, 1e-9)
	assert.Equal(t, "https://example.com/d.png", vehicles[1].ImageURL)

	rows, err := store.GetRateRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.InDelta(t, 5, rows[0].TierPercent, 1e-9)
	assert.Empty(t, rows[0].Rates)
	assert.Len(t, rows[1].Rates, 2)
	assert.InDelta(t, 1.5, rows[2].Rates[model.Period72], 1e-9)

	table, err := store.GetRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10, 30}, slices.Collect(table.Tiers()))

	info, err := store.GetLastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", info.Source)
	assert.Equal(t, 3, info.VehicleCount)
	assert.Equal(t, 3, info.TierCount)
	assert.False(t, info.SyncedAt.IsZero())
}

func TestSaveSnapshot_ReplacesPrevious(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))
	before, err := store.GetRateTable(ctx)
	require.NoError(t, err)

	next := service.Snapshot{
		Source:   "second",
		Vehicles: []model.Vehicle{{Model: "Atto 3", SubModel: "Extended", Price: 1_199_900}},
		Rates:    []model.RateRow{{TierPercent: 20, Rates: map[model.Period]float64{model.Period60: 2.09}}},
	}
	require.NoError(t, store.SaveSnapshot(ctx, next))

	vehicles, err := store.GetVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Atto 3", vehicles[0].Model)

	after, err := store.GetRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{20}, slices.Collect(after.Tiers()))
	assert.Equal(t, []float64{5, 10, 30}, slices.Collect(before.Tiers()), "earlier tables are not mutated")

	info, err := store.GetLastSync(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", info.Source)
}

func TestSaveSnapshot_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		mutate  func(*service.Snapshot)
		wantErr error
		name    string
	}{
		{
			name:    "no vehicles",
			mutate:  func(s *service.Snapshot) { s.Vehicles = nil },
			wantErr: ErrEmptySlice,
		},
		{
			name:    "no rates",
			mutate:  func(s *service.Snapshot) { s.Rates = nil },
			wantErr: ErrEmptySlice,
		},
		{
			name:    "zero price",
			mutate:  func(s *service.Snapshot) { s.Vehicles[0].Price = 0 },
			wantErr: ErrInvalidVehicle,
		},
		{
			name:    "tier above 100",
			mutate:  func(s *service.Snapshot) { s.Rates[0].TierPercent = 120 },
			wantErr: ErrInvalidRateRow,
		},
		{
			name:    "disallowed period",
			mutate:  func(s *service.Snapshot) { s.Rates[0].Rates[model.Period(36)] = 1 },
			wantErr: ErrInvalidRateRow,
		},
		{
			name:    "duplicate tier",
			mutate:  func(s *service.Snapshot) { s.Rates[1].TierPercent = 30 },
			wantErr: ErrDuplicateRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := testSnapshot()
			tt.mutate(&snap)
			err := store.SaveSnapshot(ctx, snap)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := store.GetLastSync(ctx)
	assert.ErrorIs(t, err, common.ErrNoSnapshot, "rejected snapshots are not recorded")
}

func TestSaveSnapshot_ParsedCatalogWithStrayRow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := catalog.Parse(
		[]string{"model", "sub model", "price", "image_url"},
		[][]string{
			{"Seal", "AWD", "1,325,000", ""},
			{"", "", "999", ""},
		},
	)
	require.NoError(t, err)

	snap := testSnapshot()
	snap.Vehicles = cat.Vehicles()
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	vehicles, err := store.GetVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "Seal", vehicles[0].Model)
}

func TestGetVehicle(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))

	v, err := store.GetVehicle(ctx, "Dolphin", "Standard")
	require.NoError(t, err)
	assert.InDelta(t, 699_900, v.Price, 1e-9)

	_, err = store.GetVehicle(ctx, "Dolphin", "Premium")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetVehicle(ctx, " ", "Premium")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestEmptyStore(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetLastSync(ctx)
	assert.ErrorIs(t, err, common.ErrNoSnapshot)

	vehicles, err := store.GetVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, vehicles)

	table, err := store.GetRateTable(ctx)
	require.NoError(t, err)
	assert.True(t, table.Empty())
}

func TestGetRateTable_ConcurrentReaders(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := store.GetRateTable(ctx)
			if err != nil {
				errs <- err
				return
			}
			if _, ok := table.RateFor(30, model.Period84); !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent read failed: %v", err)
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}
