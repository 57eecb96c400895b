package service

import (
	"fmt"
	"log"

	"parkease/internal/entities"
)

const (
	DefaultBaseFee      = 20.0
	DefaultRatePer15Min = 5.0
)

// FeeService computes parking fees from durations. Pricing: a flat
// base fee plus a per-15-minute rate, with the duration rounded up to
// the next 15-minute boundary.
type FeeService struct {
	BaseFee      float64
	RatePer15Min float64
}

func NewFeeService(baseFee, ratePer15Min float64) *FeeService {
	if baseFee <= 0 {
		baseFee = DefaultBaseFee
	}
	if ratePer15Min <= 0 {
		ratePer15Min = DefaultRatePer15Min
	}
	return &FeeService{BaseFee: baseFee, RatePer15Min: ratePer15Min}
}

// CalculateFee returns the fee for a parking duration in minutes. A
// non-positive duration still incurs the base fee (minimum charge).
func (s *FeeService) CalculateFee(durationMinutes int) entities.FeeDetails {
	if durationMinutes <= 0 {
		log.Printf("Fee calculation: invalid duration %d, charging minimum", durationMinutes)
		return entities.FeeDetails{
			ActualDuration:  0,
			RoundedDuration: 0,
			Fee:             s.BaseFee,
		}
	}

	rounded := RoundUpTo15Minutes(durationMinutes)
	timeCharge := float64(rounded) / 15.0 * s.RatePer15Min

	return entities.FeeDetails{
		ActualDuration:  durationMinutes,
		RoundedDuration: rounded,
		Fee:             s.BaseFee + timeCharge,
	}
}

// RoundUpTo15Minutes rounds a duration up to the next 15-minute
// boundary. Exact multiples are unchanged: 15 -> 15, 16 -> 30.
func RoundUpTo15Minutes(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + 14) / 15 * 15
}

// FeeBreakdown renders a human-readable explanation of the charge.
func (s *FeeService) FeeBreakdown(durationMinutes int) string {
	rounded := RoundUpTo15Minutes(durationMinutes)
	timeCharge := float64(rounded) / 15.0 * s.RatePer15Min
	return fmt.Sprintf("Duration: %d min, charged: %d min (%s), base: %.2f + time: %.2f = total: %.2f",
		durationMinutes, rounded, FormatDuration(rounded),
		s.BaseFee, timeCharge, s.BaseFee+timeCharge)
}

// PricingInfo describes the active tariff.
func (s *FeeService) PricingInfo() entities.PricingInfo {
	return entities.PricingInfo{
		BaseFee:         s.BaseFee,
		RatePer15Min:    s.RatePer15Min,
		MinimumCharge:   s.BaseFee,
		BillingInterval: "15 minutes",
		Description:     fmt.Sprintf("%.2f base fee + %.2f per 15 minutes", s.BaseFee, s.RatePer15Min),
	}
}
