package handler

import (
	"encoding/json"
	"net/http"

	"github.com/swipe-api/internal/application/auth"
	"github.com/swipe-api/internal/domain"
)

// AuthHandler handles the OTP login endpoints.
type AuthHandler struct {
	svc auth.Service
	// echoCode enables the demo shortcut of returning the plaintext code in
	// the response. Never set in production.
	echoCode bool
}

func NewAuthHandler(svc auth.Service, echoCode bool) *AuthHandler {
	return &AuthHandler{svc: svc, echoCode: echoCode}
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	plain, err := h.svc.RequestCode(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	env := OTPEnvelope{Message: "code sent"}
	if h.echoCode {
		env.DemoCode = plain
	}
	writeJSON(w, http.StatusOK, env)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, bearer, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{ProfileID: p.ProfileID, Bearer: bearer})
}
