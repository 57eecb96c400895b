package service

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"parkease/internal/entities"
)

// SlotValidator is consulted during booking creation. Implementations
// must return ValidationUnavailable rather than an error when the
// check itself cannot be performed.
type SlotValidator interface {
	ValidateSlot(ctx context.Context, req entities.ValidationRequest) entities.ValidationResult
}

// HTTPSlotValidator calls the external slot-validation service over
// HTTP with a short timeout.
type HTTPSlotValidator struct {
	client *resty.Client
	url    string
}

func NewHTTPSlotValidator(url string, timeout time.Duration) *HTTPSlotValidator {
	client := resty.New().SetTimeout(timeout)
	return &HTTPSlotValidator{client: client, url: url}
}

type validatorResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateSlot posts the booking details to the validator. Any
// transport failure, timeout or non-200 response yields
// ValidationUnavailable; the caller treats that as valid. This is an
// intentional availability-over-consistency trade-off: an unreachable
// validator must not block bookings.
func (v *HTTPSlotValidator) ValidateSlot(ctx context.Context, req entities.ValidationRequest) entities.ValidationResult {
	if v.url == "" {
		return entities.ValidationResult{Outcome: entities.ValidationUnavailable}
	}

	var body validatorResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&body).
		Post(v.url)
	if err != nil {
		log.Printf("Slot validation service unavailable, proceeding without validation: %v", err)
		return entities.ValidationResult{Outcome: entities.ValidationUnavailable}
	}
	if resp.StatusCode() != 200 {
		log.Printf("Slot validation service returned status %d, proceeding without validation", resp.StatusCode())
		return entities.ValidationResult{Outcome: entities.ValidationUnavailable}
	}

	if !body.Valid {
		return entities.ValidationResult{Outcome: entities.ValidationInvalid, Message: body.Message}
	}
	return entities.ValidationResult{Outcome: entities.ValidationValid}
}
