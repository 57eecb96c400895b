package entities

// ValidationRequest is sent to the external slot-validation service
// while creating a booking.
type ValidationRequest struct {
	SlotID        string `json:"slotId"`
	SlotNumber    string `json:"slotNumber"`
	VehicleNumber string `json:"vehicleNumber"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// ValidationOutcome is the tri-state result of consulting the external
// validator. Unavailable is deliberately treated like Valid by the
// booking service (fail-open).
type ValidationOutcome int

const (
	ValidationValid ValidationOutcome = iota
	ValidationInvalid
	ValidationUnavailable
)

// ValidationResult carries the outcome plus the validator's message
// when the slot was rejected.
type ValidationResult struct {
	Outcome ValidationOutcome
	Message string
}
