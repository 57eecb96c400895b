package service

import "testing"

func TestCalculateFee_NonPositiveDuration(t *testing.T) {
	fees := NewFeeService(DefaultBaseFee, DefaultRatePer15Min)

	for _, d := range []int{0, -1, -90} {
		details := fees.CalculateFee(d)
		if details.Fee != DefaultBaseFee {
			t.Fatalf("duration %d: expected minimum charge %.2f, got %.2f", d, DefaultBaseFee, details.Fee)
		}
		if details.RoundedDuration != 0 || details.ActualDuration != 0 {
			t.Fatalf("duration %d: expected zeroed durations, got %+v", d, details)
		}
	}
}

func TestCalculateFee_RoundsUpTo15Minutes(t *testing.T) {
	cases := []struct {
		minutes int
		rounded int
	}{
		{1, 15},
		{14, 15},
		{15, 15},
		{16, 30},
		{30, 30},
		{31, 45},
		{95, 105},
		{130, 135},
	}
	fees := NewFeeService(DefaultBaseFee, DefaultRatePer15Min)
	for _, c := range cases {
		details := fees.CalculateFee(c.minutes)
		if details.RoundedDuration != c.rounded {
			t.Fatalf("duration %d: expected rounded %d, got %d", c.minutes, c.rounded, details.RoundedDuration)
		}
		if details.ActualDuration != c.minutes {
			t.Fatalf("duration %d: actual duration not preserved: %d", c.minutes, details.ActualDuration)
		}
		want := DefaultBaseFee + float64(c.rounded)/15.0*DefaultRatePer15Min
		if details.Fee != want {
			t.Fatalf("duration %d: expected fee %.2f, got %.2f", c.minutes, want, details.Fee)
		}
	}
}

func TestCalculateFee_130MinutesScenario(t *testing.T) {
	fees := NewFeeService(DefaultBaseFee, DefaultRatePer15Min)
	details := fees.CalculateFee(130)
	if details.RoundedDuration != 135 {
		t.Fatalf("expected rounded 135, got %d", details.RoundedDuration)
	}
	if details.Fee != 65.0 {
		t.Fatalf("expected fee 65.0, got %.2f", details.Fee)
	}
}

func TestCalculateFee_MonotonicallyNonDecreasing(t *testing.T) {
	fees := NewFeeService(DefaultBaseFee, DefaultRatePer15Min)
	prev := fees.CalculateFee(1).Fee
	for d := 2; d <= 600; d++ {
		fee := fees.CalculateFee(d).Fee
		if fee < prev {
			t.Fatalf("fee decreased at duration %d: %.2f < %.2f", d, fee, prev)
		}
		prev = fee
	}
}

func TestRoundUpTo15Minutes_AlwaysMultipleCoveringInput(t *testing.T) {
	for d := 1; d <= 300; d++ {
		rounded := RoundUpTo15Minutes(d)
		if rounded%15 != 0 {
			t.Fatalf("duration %d: rounded %d is not a multiple of 15", d, rounded)
		}
		if rounded < d {
			t.Fatalf("duration %d: rounded %d is smaller than input", d, rounded)
		}
		if rounded-d >= 15 {
			t.Fatalf("duration %d: rounded %d overshoots by a full interval", d, rounded)
		}
	}
}

func TestNewFeeService_DefaultsOnInvalidConfig(t *testing.T) {
	fees := NewFeeService(0, -1)
	if fees.BaseFee != DefaultBaseFee || fees.RatePer15Min != DefaultRatePer15Min {
		t.Fatalf("expected defaults, got base=%.2f rate=%.2f", fees.BaseFee, fees.RatePer15Min)
	}
}

func TestPricingInfo(t *testing.T) {
	fees := NewFeeService(DefaultBaseFee, DefaultRatePer15Min)
	info := fees.PricingInfo()
	if info.MinimumCharge != DefaultBaseFee {
		t.Fatalf("expected minimum charge %.2f, got %.2f", DefaultBaseFee, info.MinimumCharge)
	}
	if info.BillingInterval != "15 minutes" {
		t.Fatalf("unexpected billing interval %q", info.BillingInterval)
	}
}
