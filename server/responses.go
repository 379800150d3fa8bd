package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
)

// envelope is the response shape used across the API:
// {"status": ..., "message": ..., "data": ...}
type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, apperrors.Status(err), apperrors.Message(err))
}

func writeErrorStatus(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Status:  status,
		Message: message,
	})
}
