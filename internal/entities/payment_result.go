package entities

// PaymentResult is the outcome of a simulated payment attempt. A
// declined payment is a normal result, not an error: Success is false,
// Status is "failed" and the caller may retry.
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}
