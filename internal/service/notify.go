package service

import (
	"log"

	"parkease/internal/db"
	"parkease/internal/entities"
)

// Notifier is the outbound event sink. Calls are fire-and-forget: no
// acknowledgment, no delivery guarantee, and no error propagation back
// into the booking lifecycle.
type Notifier interface {
	BookingCreated(event entities.BookingCreatedEvent)
	SlotChanged(slot db.Slot)
}

// LogNotifier only records events in the server log. It is the sink
// used when no delivery channels are configured.
type LogNotifier struct{}

func (LogNotifier) BookingCreated(event entities.BookingCreatedEvent) {
	log.Printf("Event BookingCreated: booking %d, slot %s, vehicle %s",
		event.BookingID, event.SlotNumber, event.VehicleNumber)
}

func (LogNotifier) SlotChanged(slot db.Slot) {
	log.Printf("Event SlotChanged: slot %s available=%t", slot.SlotNumber, slot.IsAvailable)
}
