package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// errorResponse is the JSON body returned for any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP status codes. Anything not
// recognized is an internal error.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, conversation.ErrTurnInFlight):
		status = http.StatusConflict
	case errors.Is(err, conversation.ErrEmptyMessage),
		errors.Is(err, conversation.ErrInvalidGameScore):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}
