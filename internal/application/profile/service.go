package profile

import (
	"context"
	"fmt"

	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/pkg/validate"
)

// Store is the profile persistence the service needs.
type Store interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
	Update(ctx context.Context, profileID string, updates map[string]interface{}) error
}

type Service interface {
	Get(ctx context.Context, profileID string) (*domain.Profile, error)
	Update(ctx context.Context, profileID string, req domain.UpdateProfileRequest) (*domain.Profile, error)
}

type service struct {
	repo Store
}

func NewService(repo Store) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, profileID string) (*domain.Profile, error) {
	return s.repo.Get(ctx, profileID)
}

func (s *service) Update(ctx context.Context, profileID string, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Interests != nil {
		updates["interests"] = *req.Interests
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, profileID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, profileID)
}
