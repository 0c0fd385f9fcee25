package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/carquote/internal/catalog"
	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/config"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/Veraticus/carquote/internal/service"
	"github.com/Veraticus/carquote/internal/sheets"
	"github.com/Veraticus/carquote/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// quoteData is everything a quote needs besides the request.
type quoteData struct {
	catalog *catalog.Catalog
	rates   *ratetable.Table
}

// loadStoredData reads the last synced snapshot.
func loadStoredData(ctx context.Context, store service.Storage) (*quoteData, error) {
	info, err := store.GetLastSync(ctx)
	if errors.Is(err, common.ErrNoSnapshot) {
		return nil, common.NewUserError("No vehicle or rate data yet. Run 'carquote sync' first", err)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Using synced data", "synced_at", info.SyncedAt, "source", info.Source)

	vehicles, err := store.GetVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	rates, err := store.GetRateTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate table: %w", err)
	}

	return &quoteData{catalog: catalog.New(vehicles), rates: rates}, nil
}

// fetchLiveSnapshot reads both sheets from the configured source.
func fetchLiveSnapshot(ctx context.Context, progress func(string)) (*service.Snapshot, error) {
	cfg, err := config.LoadSheetsConfig()
	if errors.Is(err, common.ErrMissingConfig) {
		return nil, common.NewUserError("Google Sheets is not configured. Set sheets.catalog_url and sheets.rates_url in the config file", err)
	}
	if err != nil {
		return nil, common.NewUserError("Invalid Google Sheets settings", err)
	}

	src, err := sheets.NewRowSource(ctx, *cfg, slog.Default())
	if err != nil {
		return nil, err
	}

	catalogRef, ratesRef := cfg.Refs()
	return sheets.FetchSnapshot(ctx, src, catalogRef, ratesRef, progress)
}

// loadLiveData reads both sheets without touching the local snapshot.
func loadLiveData(ctx context.Context) (*quoteData, error) {
	snap, err := fetchLiveSnapshot(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &quoteData{catalog: catalog.New(snap.Vehicles), rates: ratetable.New(snap.Rates)}, nil
}
