package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"parkease/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps application errors to their HTTP status. Internal
// errors are logged and masked with a generic message.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "Internal server error"
	}

	body := map[string]interface{}{"message": message}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.CurrentState != "" {
		body["current_status"] = appErr.CurrentState
	}
	writeJSON(w, status, body)
}
