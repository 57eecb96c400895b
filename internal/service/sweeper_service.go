package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"parkease/internal/repository"
)

// SweeperService completes bookings whose scheduled window lapsed
// without an explicit checkout and releases their slots. It is the
// only writer that can complete a booking without a successful
// payment.
type SweeperService struct {
	bookings repository.BookingRepository
	slots    repository.SlotRepository
	notifier Notifier

	now func() time.Time
}

func NewSweeperService(bookings repository.BookingRepository, slots repository.SlotRepository, notifier Notifier) *SweeperService {
	return &SweeperService{
		bookings: bookings,
		slots:    slots,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock overrides the sweeper clock. Test hook.
func (s *SweeperService) WithClock(now func() time.Time) *SweeperService {
	s.now = now
	return s
}

// ReleaseExpired runs one sweep. Failures on individual bookings are
// logged and skipped so one bad record cannot abort the batch, and the
// conditional status update makes repeat runs over the same booking a
// no-op.
func (s *SweeperService) ReleaseExpired(ctx context.Context) error {
	expired, err := s.bookings.FindExpired(ctx, s.now())
	if err != nil {
		return fmt.Errorf("sweeper: querying expired bookings: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	log.Printf("Sweeper: found %d expired booking(s), releasing slots", len(expired))

	released := 0
	for _, booking := range expired {
		completed, err := s.bookings.CompleteExpired(ctx, booking.ID)
		if err != nil {
			log.Printf("Sweeper: could not complete booking %d: %v", booking.ID, err)
			continue
		}
		if !completed {
			// Already completed by a checkout/payment or a previous sweep.
			continue
		}

		if err := s.slots.SetAvailability(ctx, booking.SlotID, true); err != nil {
			log.Printf("Sweeper: booking %d completed, but slot %d could not be released: %v",
				booking.ID, booking.SlotID, err)
			continue
		}
		if slot, err := s.slots.FindByID(ctx, booking.SlotID); err == nil {
			s.notifier.SlotChanged(*slot)
			log.Printf("Sweeper: released slot %s (booking %d ended at %s)",
				slot.SlotNumber, booking.ID, booking.EndTime.Format(time.RFC3339))
		}
		released++
	}

	if released > 0 {
		log.Printf("Sweeper: released %d slot(s)", released)
	}
	return nil
}

// Start schedules recurring sweeps at the given interval and returns
// the running scheduler so the caller can Stop it on shutdown.
func (s *SweeperService) Start(interval time.Duration) *cron.Cron {
	c := cron.New()
	spec := fmt.Sprintf("@every %s", interval)
	_, err := c.AddFunc(spec, func() {
		if err := s.ReleaseExpired(context.Background()); err != nil {
			log.Printf("Sweeper: sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Sweeper: could not schedule sweep (%s): %v", spec, err)
		return c
	}
	c.Start()
	log.Printf("Sweeper: automatic slot release scheduled every %s", interval)
	return c
}
