package service

import (
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"parkease/internal/db"
	"parkease/internal/entities"
)

const (
	DefaultPaymentSuccessRate = 0.9
	DefaultPaymentDelay       = 500 * time.Millisecond
)

// PaymentSimulator emulates an external payment gateway: an artificial
// processing delay followed by a random success/failure outcome. The
// random source and delay are injectable so tests can force outcomes
// and skip the wait.
type PaymentSimulator struct {
	SuccessRate float64
	Delay       time.Duration

	randFloat func() float64
	now       func() time.Time
}

func NewPaymentSimulator(successRate float64, delay time.Duration) *PaymentSimulator {
	if successRate < 0 || successRate > 1 {
		successRate = DefaultPaymentSuccessRate
	}
	return &PaymentSimulator{
		SuccessRate: successRate,
		Delay:       delay,
		randFloat:   rand.Float64,
		now:         time.Now,
	}
}

// WithRandSource overrides the random source. Test hook.
func (s *PaymentSimulator) WithRandSource(randFloat func() float64) *PaymentSimulator {
	s.randFloat = randFloat
	return s
}

// ProcessPayment simulates charging the given amount for a booking.
// A decline is a normal result, not an error.
func (s *PaymentSimulator) ProcessPayment(amount float64, bookingID int) entities.PaymentResult {
	log.Printf("Processing payment of %.2f for booking %d", amount, bookingID)

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	if s.randFloat() < s.SuccessRate {
		txnID := GenerateTransactionID()
		log.Printf("Payment successful for booking %d, transaction %s", bookingID, txnID)
		return entities.PaymentResult{
			Success:       true,
			TransactionID: txnID,
			Status:        db.PaymentStatusCompleted,
			Message:       "Payment completed successfully",
		}
	}

	log.Printf("Payment failed for booking %d", bookingID)
	return entities.PaymentResult{
		Success: false,
		Status:  db.PaymentStatusFailed,
		Message: "Payment failed: insufficient balance or network error",
	}
}

// ValidateAmount reports whether an amount is chargeable.
func (s *PaymentSimulator) ValidateAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

// GenerateTransactionID returns "TXN-" plus the first 8 characters of
// a random UUID, uppercased. Uniqueness is probabilistic, which is
// enough for simulated receipts.
func GenerateTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString()[:8])
}
