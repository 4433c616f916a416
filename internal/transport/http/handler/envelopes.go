package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CreatedEnvelope wraps responses that return a fresh identifier.
type CreatedEnvelope struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// VerificationEnvelope confirms code issuance. It echoes the normalized
// contact and never carries the code itself.
type VerificationEnvelope struct {
	RequireVerification bool   `json:"requireVerification"`
	Contact             string `json:"contact"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps domain sentinel errors onto HTTP status codes. Anything
// unrecognized is an infrastructure failure and comes back as a 500.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
