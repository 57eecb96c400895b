package service

import (
	"context"
	"sync"
	"time"

	"parkease/internal/db"
	"parkease/internal/entities"
	"parkease/internal/repository"
)

type memSlotRepo struct {
	mu     sync.Mutex
	nextID int
	slots  map[int]db.Slot

	setAvailabilityErr error
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{nextID: 1, slots: map[int]db.Slot{}}
}

func (r *memSlotRepo) Create(_ context.Context, slot *db.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot.ID = r.nextID
	r.nextID++
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memSlotRepo) FindByID(_ context.Context, id int) (*db.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.slots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &slot, nil
}

func (r *memSlotRepo) List(_ context.Context, _ repository.SlotFilter) ([]db.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Slot
	for _, slot := range r.slots {
		out = append(out, slot)
	}
	return out, nil
}

func (r *memSlotRepo) Update(_ context.Context, slot *db.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[slot.ID]; !ok {
		return repository.ErrNotFound
	}
	r.slots[slot.ID] = *slot
	return nil
}

func (r *memSlotRepo) SetAvailability(_ context.Context, id int, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setAvailabilityErr != nil {
		return r.setAvailabilityErr
	}
	slot, ok := r.slots[id]
	if !ok {
		return repository.ErrNotFound
	}
	slot.IsAvailable = available
	r.slots[id] = slot
	return nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int
	bookings map[int]db.Booking

	completeErr map[int]error // per-booking failure injection
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{nextID: 1, bookings: map[int]db.Booking{}, completeErr: map[int]error{}}
}

func (r *memBookingRepo) Create(_ context.Context, booking *db.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = r.nextID
	r.nextID++
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id int) (*db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &booking, nil
}

func (r *memBookingRepo) FindByUser(_ context.Context, userID int) ([]db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindAll(_ context.Context) ([]db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Booking
	for _, booking := range r.bookings {
		out = append(out, booking)
	}
	return out, nil
}

func (r *memBookingRepo) Update(_ context.Context, booking *db.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	r.bookings[booking.ID] = *booking
	return nil
}

// CountConflicts mirrors the Postgres overlap clauses exactly,
// including the boundary asymmetry.
func (r *memBookingRepo) CountConflicts(_ context.Context, slotID int, start, end time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, b := range r.bookings {
		if b.SlotID != slotID || b.Status != db.BookingStatusBooked {
			continue
		}
		startsInside := !b.StartTime.After(start) && start.Before(b.EndTime)
		endsInside := b.StartTime.Before(end) && !end.After(b.EndTime)
		covers := !start.After(b.StartTime) && !b.EndTime.After(end)
		if startsInside || endsInside || covers {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) FindExpired(_ context.Context, now time.Time) ([]db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Booking
	for _, booking := range r.bookings {
		if booking.Status == db.BookingStatusBooked && booking.EndTime.Before(now) {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (r *memBookingRepo) CompleteExpired(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.completeErr[id]; err != nil {
		return false, err
	}
	booking, ok := r.bookings[id]
	if !ok || booking.Status != db.BookingStatusBooked {
		return false, nil
	}
	booking.Status = db.BookingStatusCompleted
	r.bookings[id] = booking
	return true, nil
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]db.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int]db.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *db.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// stubValidator returns a fixed validation result.
type stubValidator struct {
	result entities.ValidationResult
	calls  int
}

func (v *stubValidator) ValidateSlot(_ context.Context, _ entities.ValidationRequest) entities.ValidationResult {
	v.calls++
	return v.result
}

// recordNotifier captures emitted events for assertions.
type recordNotifier struct {
	mu       sync.Mutex
	created  []entities.BookingCreatedEvent
	slots    []db.Slot
}

func (n *recordNotifier) BookingCreated(event entities.BookingCreatedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, event)
}

func (n *recordNotifier) SlotChanged(slot db.Slot) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slots = append(n.slots, slot)
}

func (n *recordNotifier) slotEvents() []db.Slot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]db.Slot(nil), n.slots...)
}
