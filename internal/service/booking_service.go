package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"parkease/internal/apperrors"
	"parkease/internal/db"
	"parkease/internal/entities"
	"parkease/internal/repository"
)

// CreateBookingInput is the typed request for a new booking.
type CreateBookingInput struct {
	SlotID        int
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
}

// BookingService owns the booking lifecycle: conflict-free creation,
// the SCHEDULED -> CHECKED_IN -> CHECKED_OUT transitions, fee
// computation and simulated payment. It is, together with the expiry
// sweeper, the only writer of bookings and slot availability.
type BookingService struct {
	bookings repository.BookingRepository
	slots    repository.SlotRepository
	users    repository.UserRepository

	fees      *FeeService
	payments  *PaymentSimulator
	validator SlotValidator
	notifier  Notifier

	now func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	slots repository.SlotRepository,
	users repository.UserRepository,
	fees *FeeService,
	payments *PaymentSimulator,
	validator SlotValidator,
	notifier Notifier,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		slots:     slots,
		users:     users,
		fees:      fees,
		payments:  payments,
		validator: validator,
		notifier:  notifier,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBooking validates the request, consults the external validator
// (fail-open), runs the conflict check, persists the booking, marks the
// slot unavailable and emits BookingCreated and SlotChanged events.
func (s *BookingService) CreateBooking(ctx context.Context, userID int, input CreateBookingInput) (*db.Booking, *db.Slot, error) {
	if input.VehicleNumber == "" {
		return nil, nil, apperrors.Validation("vehicle number is required")
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return nil, nil, apperrors.Validation("start time and end time are required")
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, nil, apperrors.Validation("end time must be after start time")
	}

	slot, err := s.slots.FindByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NotFound("slot not found")
		}
		return nil, nil, fmt.Errorf("looking up slot %d: %w", input.SlotID, err)
	}

	// Fail-open: an unavailable validator is treated exactly like a
	// valid answer. Availability over consistency, on purpose.
	result := s.validator.ValidateSlot(ctx, entities.ValidationRequest{
		SlotID:        strconv.Itoa(slot.ID),
		SlotNumber:    slot.SlotNumber,
		VehicleNumber: input.VehicleNumber,
		StartTime:     input.StartTime.Format(time.RFC3339),
		EndTime:       input.EndTime.Format(time.RFC3339),
	})
	if result.Outcome == entities.ValidationInvalid {
		message := result.Message
		if message == "" {
			message = "slot validation failed"
		}
		return nil, nil, apperrors.Validation(message)
	}

	conflicts, err := s.bookings.CountConflicts(ctx, slot.ID, input.StartTime, input.EndTime)
	if err != nil {
		return nil, nil, fmt.Errorf("checking booking conflicts for slot %d: %w", slot.ID, err)
	}
	if conflicts > 0 {
		return nil, nil, apperrors.SlotConflict("slot is already booked for this time period")
	}

	now := s.now()
	booking := &db.Booking{
		UserID:        userID,
		SlotID:        slot.ID,
		VehicleNumber: input.VehicleNumber,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		ParkingStatus: db.ParkingStatusScheduled,
		Status:        db.BookingStatusBooked,
		Payment: db.Payment{
			Amount: 0,
			Method: db.PaymentMethodNone,
			Status: db.PaymentStatusPending,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, nil, fmt.Errorf("creating booking: %w", err)
	}

	slot.IsAvailable = false
	if err := s.slots.SetAvailability(ctx, slot.ID, false); err != nil {
		log.Printf("Booking %d created, but slot %d could not be marked unavailable: %v",
			booking.ID, slot.ID, err)
	}

	event := entities.BookingCreatedEvent{
		BookingID:     booking.ID,
		SlotNumber:    slot.SlotNumber,
		VehicleNumber: input.VehicleNumber,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
	}
	if user, err := s.users.FindByID(ctx, userID); err == nil {
		event.UserName = user.Name
		event.UserEmail = user.Email
		event.UserPhone = user.Phone
	}
	s.notifier.BookingCreated(event)
	s.notifier.SlotChanged(*slot)

	return booking, slot, nil
}

// CheckIn records the vehicle entry and advances the parking status to
// CHECKED_IN. Only the booking owner may check in, and only once.
func (s *BookingService) CheckIn(ctx context.Context, bookingID, userID int) (*db.Booking, error) {
	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, err
	}

	if booking.ParkingStatus != db.ParkingStatusScheduled {
		return nil, apperrors.InvalidState("booking already checked in", booking.ParkingStatus)
	}

	entry := s.now()
	booking.ActualEntryTime = &entry
	booking.ParkingStatus = db.ParkingStatusCheckedIn
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("saving check-in for booking %d: %w", bookingID, err)
	}

	log.Printf("Check-in successful for booking %d", bookingID)
	return booking, nil
}

// CheckOut records the vehicle exit, computes the actual duration and
// fee, marks the payment pending and releases the slot.
func (s *BookingService) CheckOut(ctx context.Context, bookingID, userID int) (*db.Booking, entities.FeeBreakdown, error) {
	var empty entities.FeeBreakdown

	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return nil, empty, err
	}

	switch booking.ParkingStatus {
	case db.ParkingStatusScheduled:
		return nil, empty, apperrors.InvalidState("booking must be checked in first", booking.ParkingStatus)
	case db.ParkingStatusCheckedOut:
		return nil, empty, apperrors.InvalidState("booking already checked out", booking.ParkingStatus)
	}

	exit := s.now()
	booking.ActualExitTime = &exit

	duration := CalculateDuration(booking.ActualEntryTime, booking.ActualExitTime)
	booking.ActualDuration = &duration

	fee := s.fees.CalculateFee(duration)
	booking.Payment.Amount = fee.Fee
	booking.Payment.Status = db.PaymentStatusPending
	booking.ParkingStatus = db.ParkingStatusCheckedOut

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, empty, fmt.Errorf("saving check-out for booking %d: %w", bookingID, err)
	}

	if err := s.slots.SetAvailability(ctx, booking.SlotID, true); err != nil {
		log.Printf("Booking %d checked out, but slot %d could not be released: %v",
			bookingID, booking.SlotID, err)
	} else if slot, err := s.slots.FindByID(ctx, booking.SlotID); err == nil {
		s.notifier.SlotChanged(*slot)
	}

	log.Printf("Check-out successful for booking %d, duration %d min, fee %.2f",
		bookingID, duration, fee.Fee)

	return booking, entities.FeeBreakdown{
		ActualDuration:  fee.ActualDuration,
		RoundedDuration: fee.RoundedDuration,
		Amount:          fee.Fee,
		Breakdown:       s.fees.FeeBreakdown(duration),
	}, nil
}

// ProcessPayment charges the fee computed at check-out through the
// payment simulator. A decline leaves the booking retryable; success
// completes it.
func (s *BookingService) ProcessPayment(ctx context.Context, bookingID, userID int, method string) (entities.PaymentResult, *db.Booking, error) {
	var empty entities.PaymentResult

	booking, err := s.ownedBooking(ctx, bookingID, userID)
	if err != nil {
		return empty, nil, err
	}

	if booking.ParkingStatus != db.ParkingStatusCheckedOut {
		return empty, nil, apperrors.InvalidState("booking must be checked out first", booking.ParkingStatus)
	}
	if booking.Payment.Status == db.PaymentStatusCompleted {
		return empty, nil, apperrors.InvalidState("payment already completed", booking.Payment.Status)
	}

	method, err = normalizePaymentMethod(method)
	if err != nil {
		return empty, nil, err
	}

	amount := booking.Payment.Amount
	if !s.payments.ValidateAmount(amount) {
		return empty, nil, apperrors.Validation("invalid payment amount")
	}

	result := s.payments.ProcessPayment(amount, bookingID)

	booking.Payment.Status = result.Status
	booking.Payment.Method = method
	booking.Payment.TransactionID = result.TransactionID
	if result.Success {
		paidAt := s.now()
		booking.Payment.PaidAt = &paidAt
		booking.Status = db.BookingStatusCompleted
	} else {
		booking.Payment.PaidAt = nil
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return empty, nil, fmt.Errorf("saving payment result for booking %d: %w", bookingID, err)
	}

	return result, booking, nil
}

// FeeDetails returns the fee breakdown for a checked-out or completed
// booking. Admins may inspect any booking.
func (s *BookingService) FeeDetails(ctx context.Context, bookingID, userID int, isAdmin bool) (*db.Booking, entities.FeeBreakdown, error) {
	var empty entities.FeeBreakdown

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, empty, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, empty, apperrors.Ownership("access denied")
	}

	if booking.Status != db.BookingStatusCompleted && booking.ParkingStatus != db.ParkingStatusCheckedOut {
		return nil, empty, apperrors.InvalidState("fee details available only after check-out", booking.ParkingStatus)
	}
	if booking.ActualDuration == nil || *booking.ActualDuration == 0 {
		return nil, empty, apperrors.Validation("duration data not available for this booking")
	}

	fee := s.fees.CalculateFee(*booking.ActualDuration)
	return booking, entities.FeeBreakdown{
		ActualDuration:  fee.ActualDuration,
		RoundedDuration: fee.RoundedDuration,
		Amount:          fee.Fee,
		Breakdown:       s.fees.FeeBreakdown(*booking.ActualDuration),
	}, nil
}

// Pricing exposes the active tariff.
func (s *BookingService) Pricing() entities.PricingInfo {
	return s.fees.PricingInfo()
}

// MyBookings lists the requester's bookings, newest first.
func (s *BookingService) MyBookings(ctx context.Context, userID int) ([]db.Booking, error) {
	bookings, err := s.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for user %d: %w", userID, err)
	}
	return bookings, nil
}

// AllBookings lists every booking. Admin only; enforced at the API.
func (s *BookingService) AllBookings(ctx context.Context) ([]db.Booking, error) {
	bookings, err := s.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing all bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) findBooking(ctx context.Context, bookingID int) (*db.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, fmt.Errorf("looking up booking %d: %w", bookingID, err)
	}
	return booking, nil
}

func (s *BookingService) ownedBooking(ctx context.Context, bookingID, userID int) (*db.Booking, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, apperrors.Ownership("access denied")
	}
	return booking, nil
}

func normalizePaymentMethod(method string) (string, error) {
	switch method {
	case "":
		return db.PaymentMethodUPI, nil
	case db.PaymentMethodCard, db.PaymentMethodPaypal, db.PaymentMethodUPI:
		return method, nil
	default:
		return "", apperrors.Validation(fmt.Sprintf("unsupported payment method %q", method))
	}
}
