package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swipe-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// OTPEnvelope wraps request-otp responses. DemoCode is populated only in
// non-production configuration.
type OTPEnvelope struct {
	Message  string `json:"message,omitempty"`
	DemoCode string `json:"demo_code,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AuthEnvelope wraps verify-otp responses.
type AuthEnvelope struct {
	ProfileID string `json:"profile_id,omitempty"`
	Bearer    string `json:"Bearer,omitempty"`
	Error     string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps a service error onto an HTTP status using the
// domain sentinels.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCodeMismatch), errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCodeExpired), errors.Is(err, domain.ErrCodeConsumed):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
