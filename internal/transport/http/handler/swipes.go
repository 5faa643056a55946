package handler

import (
	"encoding/json"
	"net/http"

	"github.com/swipe-api/internal/application/match"
	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/transport/http/middleware"
)

// SwipeHandler handles discovery and swipe submission.
type SwipeHandler struct {
	svc match.Service
}

func NewSwipeHandler(svc match.Service) *SwipeHandler { return &SwipeHandler{svc: svc} }

func (h *SwipeHandler) Discover(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	candidates, err := h.svc.Discover(r.Context(), claims.ProfileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *SwipeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.SubmitSwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Swipe(r.Context(), claims.ProfileID, req.TargetID, req.Action)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
