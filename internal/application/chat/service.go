package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/metrics"
	"github.com/swipe-api/internal/pkg/id"
)

// MatchStore resolves matches for participant checks.
type MatchStore interface {
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)
}

// MessageStore is the message persistence the service needs. Append assigns
// the next sequence number atomically.
type MessageStore interface {
	Append(ctx context.Context, m *domain.Message) error
	List(ctx context.Context, matchID string, sinceSeq int64) ([]domain.Message, error)
}

type Service interface {
	// Send appends a message to the match. The sender must be one of the
	// match's two participants and the text must be non-empty after
	// trimming.
	Send(ctx context.Context, matchID, senderID, text string) (*domain.Message, error)
	// List returns the match's messages in ascending seq order; sinceSeq > 0
	// returns only messages with seq > sinceSeq. Every completed Send is
	// visible to the next List — polling is the delivery mechanism.
	List(ctx context.Context, matchID, callerID string, sinceSeq int64) ([]domain.Message, error)
}

type ServiceDeps struct {
	MatchRepo   MatchStore
	MessageRepo MessageStore
	Metrics     metrics.Recorder
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	return &service{deps: deps}
}

func (s *service) Send(ctx context.Context, matchID, senderID, text string) (*domain.Message, error) {
	m, err := s.deps.MatchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(senderID) {
		return nil, fmt.Errorf("sender %s is not in match %s: %w", senderID, matchID, domain.ErrForbidden)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty message: %w", domain.ErrBadRequest)
	}

	msg := &domain.Message{
		MatchID:   matchID,
		MessageID: id.New(),
		SenderID:  senderID,
		Text:      text,
		SentAt:    time.Now().UTC(),
	}
	if err := s.deps.MessageRepo.Append(ctx, msg); err != nil {
		return nil, err
	}
	s.deps.Metrics.RecordMessageSent()
	return msg, nil
}

func (s *service) List(ctx context.Context, matchID, callerID string, sinceSeq int64) ([]domain.Message, error) {
	m, err := s.deps.MatchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller %s is not in match %s: %w", callerID, matchID, domain.ErrForbidden)
	}
	return s.deps.MessageRepo.List(ctx, matchID, sinceSeq)
}
