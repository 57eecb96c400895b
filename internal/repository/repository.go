package repository

import (
	"context"
	"errors"
	"time"

	"parkease/internal/db"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("record not found")

type SlotFilter struct {
	City          string
	Area          string
	AvailableOnly bool
}

type SlotRepository interface {
	Create(ctx context.Context, slot *db.Slot) error
	FindByID(ctx context.Context, id int) (*db.Slot, error)
	List(ctx context.Context, filter SlotFilter) ([]db.Slot, error)
	Update(ctx context.Context, slot *db.Slot) error
	SetAvailability(ctx context.Context, id int, available bool) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *db.Booking) error
	FindByID(ctx context.Context, id int) (*db.Booking, error)
	FindByUser(ctx context.Context, userID int) ([]db.Booking, error)
	FindAll(ctx context.Context) ([]db.Booking, error)
	Update(ctx context.Context, booking *db.Booking) error

	// CountConflicts counts BOOKED bookings on the slot whose window
	// overlaps [start, end) under the booking service's overlap policy.
	CountConflicts(ctx context.Context, slotID int, start, end time.Time) (int, error)

	// FindExpired returns BOOKED bookings whose scheduled end has passed.
	FindExpired(ctx context.Context, now time.Time) ([]db.Booking, error)

	// CompleteExpired marks a booking COMPLETED only if it is still
	// BOOKED. Returns false when no transition happened, which makes
	// repeated sweeps over the same booking a no-op.
	CompleteExpired(ctx context.Context, id int) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *db.User) error
	FindByID(ctx context.Context, id int) (*db.User, error)
	FindByEmail(ctx context.Context, email string) (*db.User, error)
}
