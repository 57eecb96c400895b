package service

import (
	"math"
	"regexp"
	"testing"

	"parkease/internal/db"
)

var txnPattern = regexp.MustCompile(`^TXN-[0-9A-Z]{8}$`)

func TestProcessPayment_AlwaysSucceedsAtFullRate(t *testing.T) {
	sim := NewPaymentSimulator(1.0, 0)

	for i := 0; i < 25; i++ {
		result := sim.ProcessPayment(65.0, i+1)
		if !result.Success {
			t.Fatalf("expected success at rate 1.0, got %+v", result)
		}
		if result.Status != db.PaymentStatusCompleted {
			t.Fatalf("expected status %q, got %q", db.PaymentStatusCompleted, result.Status)
		}
		if !txnPattern.MatchString(result.TransactionID) {
			t.Fatalf("transaction id %q does not match TXN- pattern", result.TransactionID)
		}
	}
}

func TestProcessPayment_AlwaysFailsAtZeroRate(t *testing.T) {
	sim := NewPaymentSimulator(0.0, 0)

	result := sim.ProcessPayment(65.0, 1)
	if result.Success {
		t.Fatalf("expected failure at rate 0.0, got %+v", result)
	}
	if result.Status != db.PaymentStatusFailed {
		t.Fatalf("expected status %q, got %q", db.PaymentStatusFailed, result.Status)
	}
	if result.TransactionID != "" {
		t.Fatalf("expected empty transaction id on failure, got %q", result.TransactionID)
	}
	if result.Message == "" {
		t.Fatal("expected a decline message")
	}
}

func TestProcessPayment_ForcedRandomSource(t *testing.T) {
	sim := NewPaymentSimulator(0.9, 0).WithRandSource(func() float64 { return 0.95 })
	if result := sim.ProcessPayment(20.0, 1); result.Success {
		t.Fatalf("expected failure with rand 0.95 at rate 0.9")
	}

	sim = NewPaymentSimulator(0.9, 0).WithRandSource(func() float64 { return 0.5 })
	if result := sim.ProcessPayment(20.0, 1); !result.Success {
		t.Fatalf("expected success with rand 0.5 at rate 0.9")
	}
}

func TestValidateAmount(t *testing.T) {
	sim := NewPaymentSimulator(1.0, 0)
	cases := []struct {
		amount float64
		valid  bool
	}{
		{20.0, true},
		{0.01, true},
		{0, false},
		{-5, false},
		{math.Inf(1), false},
		{math.NaN(), false},
	}
	for _, c := range cases {
		if got := sim.ValidateAmount(c.amount); got != c.valid {
			t.Fatalf("amount %v: expected valid=%t, got %t", c.amount, c.valid, got)
		}
	}
}

func TestNewPaymentSimulator_ClampsInvalidRate(t *testing.T) {
	sim := NewPaymentSimulator(1.5, 0)
	if sim.SuccessRate != DefaultPaymentSuccessRate {
		t.Fatalf("expected default rate, got %v", sim.SuccessRate)
	}
}

func TestGenerateTransactionID_Format(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateTransactionID()
		if !txnPattern.MatchString(id) {
			t.Fatalf("transaction id %q does not match pattern", id)
		}
		seen[id] = true
	}
	if len(seen) < 90 {
		t.Fatalf("expected near-unique ids, got %d distinct of 100", len(seen))
	}
}
