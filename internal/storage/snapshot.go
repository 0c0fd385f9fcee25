package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/ratetable"
	"github.com/Veraticus/carquote/internal/service"
)

// SaveSnapshot replaces the stored catalog and rate table with snapshot and
// records the sync. The replacement is atomic.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snapshot service.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"rate_cells", "rate_tiers", "vehicles"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := s.saveVehiclesTx(ctx, tx, snapshot.Vehicles); err != nil {
		return err
	}
	if err := s.saveRateRowsTx(ctx, tx, snapshot.Rates); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO syncs (synced_at, source, vehicle_count, tier_count)
		VALUES (?, ?, ?, ?)
	`, time.Now().UTC(), snapshot.Source, len(snapshot.Vehicles), len(snapshot.Rates))
	if err != nil {
		return fmt.Errorf("failed to record sync: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.setCachedRateTable(ratetable.New(snapshot.Rates))

	slog.Debug("Saved snapshot",
		"source", snapshot.Source,
		"vehicles", len(snapshot.Vehicles),
		"tiers", len(snapshot.Rates))

	return nil
}

// GetLastSync describes the most recent sync. It returns common.ErrNoSnapshot
// when nothing has been synced yet.
func (s *SQLiteStorage) GetLastSync(ctx context.Context) (*service.SyncInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var info service.SyncInfo
	err := s.db.QueryRowContext(ctx, `
		SELECT synced_at, source, vehicle_count, tier_count
		FROM syncs
		ORDER BY synced_at DESC, id DESC
		LIMIT 1
	`).Scan(&info.SyncedAt, &info.Source, &info.VehicleCount, &info.TierCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last sync: %w", err)
	}

	return &info, nil
}
