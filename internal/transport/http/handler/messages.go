package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/swipe-api/internal/application/chat"
	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/transport/http/middleware"
)

// MessageHandler handles per-match chat endpoints.
type MessageHandler struct {
	svc chat.Service
}

func NewMessageHandler(svc chat.Service) *MessageHandler { return &MessageHandler{svc: svc} }

// List supports polling: ?since=<seq> returns only messages after that
// sequence number.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	matchID := chi.URLParam(r, "id")

	var sinceSeq int64
	if since := r.URL.Query().Get("since"); since != "" {
		n, err := strconv.ParseInt(since, 10, 64)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid since parameter")
			return
		}
		sinceSeq = n
	}

	msgs, err := h.svc.List(r.Context(), matchID, claims.ProfileID, sinceSeq)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	matchID := chi.URLParam(r, "id")

	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	msg, err := h.svc.Send(r.Context(), matchID, claims.ProfileID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
