package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/carquote/internal/model"
	"github.com/Veraticus/carquote/internal/ratetable"
)

// GetRateRows returns the stored rate rows in ascending tier order.
func (s *SQLiteStorage) GetRateRows(ctx context.Context) ([]model.RateRow, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getRateRowsTx(ctx, s.db)
}

func (s *SQLiteStorage) getRateRowsTx(ctx context.Context, q queryable) ([]model.RateRow, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.tier_percent, c.period, c.rate_percent
		FROM rate_tiers t
		LEFT JOIN rate_cells c ON c.tier_percent = t.tier_percent
		ORDER BY t.tier_percent, c.period
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.RateRow
	for rows.Next() {
		var (
			tier   float64
			period sql.NullInt64
			rate   sql.NullFloat64
		)
		if err := rows.Scan(&tier, &period, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan rate cell: %w", err)
		}

		if len(result) == 0 || result[len(result)-1].TierPercent != tier {
			result = append(result, model.RateRow{TierPercent: tier, Rates: make(map[model.Period]float64)})
		}
		if period.Valid && rate.Valid {
			result[len(result)-1].Rates[model.Period(period.Int64)] = rate.Float64
		}
	}

	return result, rows.Err()
}

// GetRateTable returns the stored rate table. The table is built once and
// cached until the next SaveSnapshot; an empty store yields an empty table.
func (s *SQLiteStorage) GetRateTable(ctx context.Context) (*ratetable.Table, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if table := s.getCachedRateTable(); table != nil {
		return table, nil
	}

	rows, err := s.getRateRowsTx(ctx, s.db)
	if err != nil {
		return nil, err
	}

	table := ratetable.New(rows)
	s.setCachedRateTable(table)
	return table, nil
}

func (s *SQLiteStorage) saveRateRowsTx(ctx context.Context, tx *sql.Tx, rows []model.RateRow) error {
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, `INSERT INTO rate_tiers (tier_percent) VALUES (?)`, row.TierPercent); err != nil {
			return fmt.Errorf("failed to save tier %v: %w", row.TierPercent, err)
		}
		for _, period := range model.AllowedPeriods {
			rate, ok := row.Rates[period]
			if !ok {
				continue
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO rate_cells (tier_percent, period, rate_percent)
				VALUES (?, ?, ?)
			`, row.TierPercent, int(period), rate)
			if err != nil {
				return fmt.Errorf("failed to save rate for tier %v %s: %w", row.TierPercent, period, err)
			}
		}
	}
	return nil
}

func (s *SQLiteStorage) getCachedRateTable() *ratetable.Table {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()
	return s.rateTable
}

func (s *SQLiteStorage) setCachedRateTable(table *ratetable.Table) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()
	s.rateTable = table
}
