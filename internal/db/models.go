package db

import "time"

// Booking lifecycle as a commercial transaction.
const (
	BookingStatusBooked    = "BOOKED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

// Physical vehicle presence lifecycle. Strictly monotonic:
// SCHEDULED -> CHECKED_IN -> CHECKED_OUT.
const (
	ParkingStatusScheduled  = "SCHEDULED"
	ParkingStatusCheckedIn  = "CHECKED_IN"
	ParkingStatusCheckedOut = "CHECKED_OUT"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodNone   = "none"
	PaymentMethodCard   = "credit_card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodUPI    = "upi"
)

type User struct {
	ID            int
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	Phone         string
	VehicleNumber string
	CreatedAt     time.Time
}

type Slot struct {
	ID          int
	SlotNumber  string
	IsAvailable bool
	City        string
	Area        string
	Address     string
	Latitude    float64
	Longitude   float64
	PlaceType   string
	Section     string
}

// Payment is the sub-record embedded in a booking. Amount is only
// meaningful once the booking reaches CHECKED_OUT.
type Payment struct {
	Amount        float64
	Method        string
	Status        string
	TransactionID string
	PaidAt        *time.Time
}

type Booking struct {
	ID              int
	UserID          int
	SlotID          int
	VehicleNumber   string
	StartTime       time.Time
	EndTime         time.Time
	ActualEntryTime *time.Time
	ActualExitTime  *time.Time
	ActualDuration  *int // minutes, set at check-out
	ParkingStatus   string
	Status          string
	Payment         Payment
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
