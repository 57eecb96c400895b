package entities

// FeeDetails is the result of a fee calculation for a parking duration.
type FeeDetails struct {
	ActualDuration  int     `json:"actual_duration"`
	RoundedDuration int     `json:"rounded_duration"`
	Fee             float64 `json:"fee"`
}

// FeeBreakdown is the caller-facing fee summary produced at check-out
// and by the fee-inspection endpoint.
type FeeBreakdown struct {
	ActualDuration  int     `json:"actual_duration"`
	RoundedDuration int     `json:"rounded_duration"`
	Amount          float64 `json:"amount"`
	Breakdown       string  `json:"breakdown"`
}

// PricingInfo describes the tariff applied by the fee calculator.
type PricingInfo struct {
	BaseFee         float64 `json:"base_fee"`
	RatePer15Min    float64 `json:"rate_per_15_min"`
	MinimumCharge   float64 `json:"minimum_charge"`
	BillingInterval string  `json:"billing_interval"`
	Description     string  `json:"description"`
}
