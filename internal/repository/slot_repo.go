package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkease/internal/db"
)

type PostgresSlotRepository struct {
	DB *sql.DB
}

func NewPostgresSlotRepository(database *sql.DB) *PostgresSlotRepository {
	return &PostgresSlotRepository{DB: database}
}

func (r *PostgresSlotRepository) Create(ctx context.Context, slot *db.Slot) error {
	query := `
		INSERT INTO slots (slot_number, is_available, city, area, address, latitude, longitude, place_type, section)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		slot.SlotNumber,
		slot.IsAvailable,
		slot.City,
		slot.Area,
		slot.Address,
		slot.Latitude,
		slot.Longitude,
		slot.PlaceType,
		slot.Section,
	).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("error creating slot %s: %w", slot.SlotNumber, err)
	}
	return nil
}

func (r *PostgresSlotRepository) FindByID(ctx context.Context, id int) (*db.Slot, error) {
	var slot db.Slot
	query := `
		SELECT id, slot_number, is_available, city, area, address, latitude, longitude, place_type, section
		FROM slots WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.SlotNumber, &slot.IsAvailable, &slot.City, &slot.Area,
		&slot.Address, &slot.Latitude, &slot.Longitude, &slot.PlaceType, &slot.Section,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying slot %d: %w", id, err)
	}
	return &slot, nil
}

func (r *PostgresSlotRepository) List(ctx context.Context, filter SlotFilter) ([]db.Slot, error) {
	query := `
		SELECT id, slot_number, is_available, city, area, address, latitude, longitude, place_type, section
		FROM slots WHERE 1=1`
	args := []interface{}{}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}
	if filter.Area != "" {
		args = append(args, filter.Area)
		query += fmt.Sprintf(" AND area = $%d", len(args))
	}
	if filter.AvailableOnly {
		query += " AND is_available = TRUE"
	}
	query += " ORDER BY slot_number"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing slots: %w", err)
	}
	defer rows.Close()

	var slots []db.Slot
	for rows.Next() {
		var slot db.Slot
		if err := rows.Scan(
			&slot.ID, &slot.SlotNumber, &slot.IsAvailable, &slot.City, &slot.Area,
			&slot.Address, &slot.Latitude, &slot.Longitude, &slot.PlaceType, &slot.Section,
		); err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slot rows: %w", err)
	}
	return slots, nil
}

func (r *PostgresSlotRepository) Update(ctx context.Context, slot *db.Slot) error {
	query := `
		UPDATE slots
		SET slot_number = $1, is_available = $2, city = $3, area = $4, address = $5,
		    latitude = $6, longitude = $7, place_type = $8, section = $9
		WHERE id = $10`
	result, err := r.DB.ExecContext(ctx, query,
		slot.SlotNumber, slot.IsAvailable, slot.City, slot.Area, slot.Address,
		slot.Latitude, slot.Longitude, slot.PlaceType, slot.Section, slot.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating slot %d: %w", slot.ID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresSlotRepository) SetAvailability(ctx context.Context, id int, available bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE slots SET is_available = $1 WHERE id = $2`, available, id)
	if err != nil {
		return fmt.Errorf("error setting availability for slot %d: %w", id, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
