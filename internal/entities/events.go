package entities

import (
	"time"

	"parkease/internal/db"
)

// BookingCreatedEvent is published to the notification sink when a new
// booking is persisted. Fire-and-forget, no delivery guarantee.
type BookingCreatedEvent struct {
	BookingID     int       `json:"booking_id"`
	SlotNumber    string    `json:"slot_number"`
	VehicleNumber string    `json:"vehicle_number"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	UserPhone     string    `json:"user_phone"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// SlotChangedEvent is published whenever a slot's availability flips.
type SlotChangedEvent struct {
	Slot db.Slot `json:"slot"`
}
