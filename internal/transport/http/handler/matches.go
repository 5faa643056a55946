package handler

import (
	"net/http"

	"github.com/swipe-api/internal/application/match"
	"github.com/swipe-api/internal/transport/http/middleware"
)

// MatchHandler lists the caller's matches.
type MatchHandler struct {
	svc match.Service
}

func NewMatchHandler(svc match.Service) *MatchHandler { return &MatchHandler{svc: svc} }

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	matches, err := h.svc.ListMatches(r.Context(), claims.ProfileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
