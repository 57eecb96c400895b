package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkease/internal/db"
)

const bookingColumns = `
	id, user_id, slot_id, vehicle_number, start_time, end_time,
	actual_entry_time, actual_exit_time, actual_duration,
	parking_status, status,
	payment_amount, payment_method, payment_status, payment_transaction_id, payment_paid_at,
	created_at, updated_at`

type PostgresBookingRepository struct {
	DB *sql.DB
}

func NewPostgresBookingRepository(database *sql.DB) *PostgresBookingRepository {
	return &PostgresBookingRepository{DB: database}
}

func (r *PostgresBookingRepository) Create(ctx context.Context, booking *db.Booking) error {
	query := `
		INSERT INTO bookings
		(user_id, slot_id, vehicle_number, start_time, end_time, parking_status, status,
		 payment_amount, payment_method, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		booking.UserID,
		booking.SlotID,
		booking.VehicleNumber,
		booking.StartTime,
		booking.EndTime,
		booking.ParkingStatus,
		booking.Status,
		booking.Payment.Amount,
		booking.Payment.Method,
		booking.Payment.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (r *PostgresBookingRepository) FindByID(ctx context.Context, id int) (*db.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return booking, nil
}

func (r *PostgresBookingRepository) FindByUser(ctx context.Context, userID int) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryBookings(ctx, query, userID)
}

func (r *PostgresBookingRepository) FindAll(ctx context.Context) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.queryBookings(ctx, query)
}

func (r *PostgresBookingRepository) Update(ctx context.Context, booking *db.Booking) error {
	query := `
		UPDATE bookings SET
			vehicle_number = $1, start_time = $2, end_time = $3,
			actual_entry_time = $4, actual_exit_time = $5, actual_duration = $6,
			parking_status = $7, status = $8,
			payment_amount = $9, payment_method = $10, payment_status = $11,
			payment_transaction_id = $12, payment_paid_at = $13,
			updated_at = NOW()
		WHERE id = $14`
	result, err := r.DB.ExecContext(ctx, query,
		booking.VehicleNumber, booking.StartTime, booking.EndTime,
		booking.ActualEntryTime, booking.ActualExitTime, booking.ActualDuration,
		booking.ParkingStatus, booking.Status,
		booking.Payment.Amount, booking.Payment.Method, booking.Payment.Status,
		nullString(booking.Payment.TransactionID), booking.Payment.PaidAt,
		booking.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating booking %d: %w", booking.ID, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountConflicts reproduces the booking service's overlap policy
// clause for clause; the boundary semantics are load-bearing (a window
// ending exactly when another starts is not a conflict).
func (r *PostgresBookingRepository) CountConflicts(ctx context.Context, slotID int, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE slot_id = $1 AND status = $2 AND (
			(start_time <= $3 AND $3 < end_time) OR
			(start_time < $4 AND $4 <= end_time) OR
			($3 <= start_time AND end_time <= $4)
		)`
	var count int
	err := r.DB.QueryRowContext(ctx, query, slotID, db.BookingStatusBooked, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting conflicting bookings for slot %d: %w", slotID, err)
	}
	return count, nil
}

func (r *PostgresBookingRepository) FindExpired(ctx context.Context, now time.Time) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND end_time < $2`
	return r.queryBookings(ctx, query, db.BookingStatusBooked, now)
}

func (r *PostgresBookingRepository) CompleteExpired(ctx context.Context, id int) (bool, error) {
	// Conditional on the current status so two sweeps racing over the
	// same booking cannot both transition it.
	result, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		db.BookingStatusCompleted, id, db.BookingStatusBooked,
	)
	if err != nil {
		return false, fmt.Errorf("error completing expired booking %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading rows affected for booking %d: %w", id, err)
	}
	return rows > 0, nil
}

func (r *PostgresBookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]db.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*db.Booking, error) {
	var booking db.Booking
	var entry, exit, paidAt sql.NullTime
	var duration sql.NullInt64
	var txnID sql.NullString
	err := row.Scan(
		&booking.ID, &booking.UserID, &booking.SlotID, &booking.VehicleNumber,
		&booking.StartTime, &booking.EndTime,
		&entry, &exit, &duration,
		&booking.ParkingStatus, &booking.Status,
		&booking.Payment.Amount, &booking.Payment.Method, &booking.Payment.Status,
		&txnID, &paidAt,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if entry.Valid {
		booking.ActualEntryTime = &entry.Time
	}
	if exit.Valid {
		booking.ActualExitTime = &exit.Time
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		booking.ActualDuration = &minutes
	}
	if txnID.Valid {
		booking.Payment.TransactionID = txnID.String
	}
	if paidAt.Valid {
		booking.Payment.PaidAt = &paidAt.Time
	}
	return &booking, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
