package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies application errors so handlers can map them to a
// stable HTTP status without string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindSlotConflict
	KindOwnership
	KindInvalidStateTransition
	KindInternal
)

// Error carries a kind and a caller-facing message. CurrentState is
// populated for invalid-transition errors so the caller can react.
type Error struct {
	Kind         Kind
	Message      string
	CurrentState string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func SlotConflict(message string) *Error {
	return New(KindSlotConflict, message)
}

func Ownership(message string) *Error {
	return New(KindOwnership, message)
}

func InvalidState(message, currentState string) *Error {
	return &Error{Kind: KindInvalidStateTransition, Message: message, CurrentState: currentState}
}

// KindOf extracts the kind from an error chain, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code the API surfaces.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotConflict:
		return http.StatusConflict
	case KindOwnership:
		return http.StatusForbidden
	case KindInvalidStateTransition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
