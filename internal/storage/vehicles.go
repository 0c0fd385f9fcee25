package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/carquote/internal/common"
	"github.com/Veraticus/carquote/internal/model"
)

// GetVehicles returns every stored vehicle in sheet order.
func (s *SQLiteStorage) GetVehicles(ctx context.Context) ([]model.Vehicle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getVehiclesTx(ctx, s.db)
}

func (s *SQLiteStorage) getVehiclesTx(ctx context.Context, q queryable) ([]model.Vehicle, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT model, sub_model, price, image_url
		FROM vehicles
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.Model, &v.SubModel, &v.Price, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// GetVehicle looks up one vehicle. It returns an error wrapping
// common.ErrNotFound when the pair is not stored.
func (s *SQLiteStorage) GetVehicle(ctx context.Context, modelName, subModel string) (*model.Vehicle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(modelName, "modelName"); err != nil {
		return nil, err
	}

	var v model.Vehicle
	err := s.db.QueryRowContext(ctx, `
		SELECT model, sub_model, price, image_url
		FROM vehicles
		WHERE model = ? AND sub_model = ?
	`, modelName, subModel).Scan(&v.Model, &v.SubModel, &v.Price, &v.ImageURL)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %q %q: %w", modelName, subModel, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &v, nil
}

// saveVehiclesTx inserts vehicles in order. A repeated model and sub model
// keeps the first row.
func (s *SQLiteStorage) saveVehiclesTx(ctx context.Context, tx *sql.Tx, vehicles []model.Vehicle) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vehicles (model, sub_model, price, image_url, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (model, sub_model) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, v := range vehicles {
		if _, err := stmt.ExecContext(ctx, v.Model, v.SubModel, v.Price, v.ImageURL, i); err != nil {
			return fmt.Errorf("failed to save vehicle %s: %w", v.DisplayName(), err)
		}
	}
	return nil
}
