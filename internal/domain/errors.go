package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// OTP verification outcomes. Distinct from ErrUnauthorized so the
	// client can tell a wrong code from a dead challenge.
	ErrCodeMismatch = errors.New("code mismatch")
	ErrCodeExpired  = errors.New("code expired")
	ErrCodeConsumed = errors.New("code already used")
)
