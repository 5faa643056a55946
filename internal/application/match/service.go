package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/metrics"
	"github.com/swipe-api/internal/pkg/id"
	"github.com/swipe-api/internal/pkg/pair"
)

// discoverPageSize caps one discovery response.
const discoverPageSize = 50

// SwipeStore is the swipe ledger the engine reads and writes.
type SwipeStore interface {
	Put(ctx context.Context, s *domain.Swipe) error
	Get(ctx context.Context, actorID, targetID string) (*domain.Swipe, error)
	ListByActor(ctx context.Context, actorID string) ([]domain.Swipe, error)
}

// MatchStore is the match persistence the engine needs. Create must be a
// conditional insert on the canonical pair key.
type MatchStore interface {
	Create(ctx context.Context, m *domain.Match) error
	GetByPair(ctx context.Context, pairID string) (*domain.Match, error)
	GetByID(ctx context.Context, matchID string) (*domain.Match, error)
	ListByProfile(ctx context.Context, profileID string) ([]domain.Match, error)
}

// ProfileStore is the profile persistence the engine needs.
type ProfileStore interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
	Scan(ctx context.Context) ([]domain.Profile, error)
}

type Service interface {
	// Swipe records the action and, on a reciprocal like, creates the match
	// for the pair. Exactly one match is ever created per pair, including
	// under concurrent reciprocal swipes.
	Swipe(ctx context.Context, actorID, targetID, action string) (*domain.SwipeResult, error)
	// Discover returns the candidate queue for profileID: everyone except
	// the caller, profiles the caller already swiped, and existing match
	// partners. Ascending profile id, so the order is stable for a given
	// ledger state.
	Discover(ctx context.Context, profileID string) ([]domain.Profile, error)
	// ListMatches returns the caller's matches with the counterpart profile.
	ListMatches(ctx context.Context, profileID string) ([]domain.MatchWithProfile, error)
}

type ServiceDeps struct {
	SwipeRepo   SwipeStore
	MatchRepo   MatchStore
	ProfileRepo ProfileStore
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

func (s *service) Swipe(ctx context.Context, actorID, targetID, action string) (*domain.SwipeResult, error) {
	if actorID == targetID {
		return nil, fmt.Errorf("cannot swipe on yourself: %w", domain.ErrBadRequest)
	}
	if action != domain.SwipeLike && action != domain.SwipePass {
		return nil, fmt.Errorf("action must be like or pass: %w", domain.ErrBadRequest)
	}
	if _, err := s.deps.ProfileRepo.Get(ctx, targetID); err != nil {
		return nil, fmt.Errorf("target profile: %w", err)
	}

	// Overwrite semantics — re-swiping the same target replaces the action
	// instead of duplicating the record.
	swipe := &domain.Swipe{
		ActorID:   actorID,
		TargetID:  targetID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.deps.SwipeRepo.Put(ctx, swipe); err != nil {
		return nil, err
	}
	s.deps.Metrics.RecordSwipe(action)

	if action != domain.SwipeLike {
		return &domain.SwipeResult{Matched: false}, nil
	}

	reverse, err := s.deps.SwipeRepo.Get(ctx, targetID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.SwipeResult{Matched: false}, nil
		}
		return nil, err
	}
	if reverse.Action != domain.SwipeLike {
		return &domain.SwipeResult{Matched: false}, nil
	}

	// Re-liking an already-matched pair is a no-op; the conditional insert
	// below still covers the race where both likes land at once.
	if _, err := s.deps.MatchRepo.GetByPair(ctx, pair.Key(actorID, targetID)); err == nil {
		return &domain.SwipeResult{Matched: false}, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	a, b := pair.Order(actorID, targetID)
	m := &domain.Match{
		PairID:    pair.Key(actorID, targetID),
		MatchID:   id.New(),
		ProfileA:  a,
		ProfileB:  b,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.deps.MatchRepo.Create(ctx, m); err != nil {
		// Conditional insert lost: the pair is already matched, either from
		// an earlier like or a concurrent one. Not an error for the caller.
		if errors.Is(err, domain.ErrConflict) {
			return &domain.SwipeResult{Matched: false}, nil
		}
		return nil, err
	}
	s.deps.Metrics.RecordMatchCreated()
	return &domain.SwipeResult{Matched: true, MatchID: m.MatchID}, nil
}

func (s *service) Discover(ctx context.Context, profileID string) ([]domain.Profile, error) {
	if _, err := s.deps.ProfileRepo.Get(ctx, profileID); err != nil {
		return nil, err
	}

	swipes, err := s.deps.SwipeRepo.ListByActor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	excluded := map[string]bool{profileID: true}
	for _, sw := range swipes {
		excluded[sw.TargetID] = true
	}

	matches, err := s.deps.MatchRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		excluded[matches[i].Other(profileID)] = true
	}

	all, err := s.deps.ProfileRepo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]domain.Profile, 0, len(all))
	for _, p := range all {
		if !excluded[p.ProfileID] {
			candidates = append(candidates, p)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ProfileID < candidates[j].ProfileID
	})
	if len(candidates) > discoverPageSize {
		candidates = candidates[:discoverPageSize]
	}
	return candidates, nil
}

func (s *service) ListMatches(ctx context.Context, profileID string) ([]domain.MatchWithProfile, error) {
	matches, err := s.deps.MatchRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchID < matches[j].MatchID
	})

	out := make([]domain.MatchWithProfile, 0, len(matches))
	for i := range matches {
		other, err := s.deps.ProfileRepo.Get(ctx, matches[i].Other(profileID))
		if err != nil {
			return nil, err
		}
		out = append(out, domain.MatchWithProfile{Match: &matches[i], Other: other})
	}
	return out, nil
}
