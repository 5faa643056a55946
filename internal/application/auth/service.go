package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swipe-api/internal/domain"
	"github.com/swipe-api/internal/metrics"
	"github.com/swipe-api/internal/pkg/code"
	"github.com/swipe-api/internal/pkg/id"
	"github.com/swipe-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// ChallengeStore is the challenge persistence the service needs.
type ChallengeStore interface {
	Put(ctx context.Context, c *domain.OtpChallenge) error
	Get(ctx context.Context, email string) (*domain.OtpChallenge, error)
	Consume(ctx context.Context, email string, issuedAt int64) error
}

// ProfileStore is the profile persistence the service needs.
type ProfileStore interface {
	Put(ctx context.Context, p *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
}

// Mailer delivers the code over email.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// SMSSender delivers the code over SMS.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// TokenSigner issues a bearer token for a verified profile.
type TokenSigner interface {
	Sign(profileID string) (string, error)
}

type Service interface {
	// RequestCode issues a fresh challenge for the email, invalidating any
	// outstanding one, and delivers the code out of band. The plaintext code
	// is returned so non-production configurations can echo it; production
	// callers must discard it.
	RequestCode(ctx context.Context, req domain.RequestOTPRequest) (string, error)
	// VerifyCode consumes the challenge and resolves or creates the profile
	// for the email. Returns the profile and a signed bearer token.
	VerifyCode(ctx context.Context, req domain.VerifyOTPRequest) (*domain.Profile, string, error)
}

type ServiceDeps struct {
	ChallengeRepo ChallengeStore
	ProfileRepo   ProfileStore
	Mailer        Mailer
	SMSSender     SMSSender
	JWTProvider   TokenSigner
	Metrics       metrics.Recorder
	CodeTTL       time.Duration
	CodeDigits    int
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

func (s *service) RequestCode(ctx context.Context, req domain.RequestOTPRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	plain, err := code.Numeric(s.deps.CodeDigits)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now()
	c := &domain.OtpChallenge{
		Email:     req.Email,
		CodeHash:  string(hash),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.deps.CodeTTL).Unix(),
		Consumed:  false,
	}
	// Put overwrites any outstanding challenge for this email, so the old
	// code dies the moment a new one is requested.
	if err := s.deps.ChallengeRepo.Put(ctx, c); err != nil {
		return "", err
	}

	if err := s.deliver(ctx, req, plain); err != nil {
		return "", err
	}
	s.deps.Metrics.RecordCodeIssued()
	return plain, nil
}

func (s *service) deliver(ctx context.Context, req domain.RequestOTPRequest, plain string) error {
	if req.Via == "sms" {
		if s.deps.SMSSender == nil {
			return fmt.Errorf("sms delivery not configured: %w", domain.ErrBadRequest)
		}
		p, err := s.deps.ProfileRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("sms delivery requires an existing profile: %w", domain.ErrBadRequest)
		}
		if p.Phone == nil {
			return fmt.Errorf("no phone number on profile: %w", domain.ErrBadRequest)
		}
		return s.deps.SMSSender.SendSMS(ctx, *p.Phone, "Your login code: "+plain)
	}
	return s.deps.Mailer.SendEmail(req.Email, "Your login code", "Your login code: "+plain)
}

func (s *service) VerifyCode(ctx context.Context, req domain.VerifyOTPRequest) (*domain.Profile, string, error) {
	if err := validate.Struct(req); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}

	c, err := s.deps.ChallengeRepo.Get(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("no outstanding challenge: %w", domain.ErrNotFound)
		}
		return nil, "", err
	}
	if c.Consumed {
		return nil, "", fmt.Errorf("challenge for %s: %w", req.Email, domain.ErrCodeConsumed)
	}
	if c.ExpiresAt < time.Now().Unix() {
		return nil, "", fmt.Errorf("challenge for %s: %w", req.Email, domain.ErrCodeExpired)
	}
	if bcrypt.CompareHashAndPassword([]byte(c.CodeHash), []byte(req.Code)) != nil {
		return nil, "", fmt.Errorf("challenge for %s: %w", req.Email, domain.ErrCodeMismatch)
	}
	// Conditional update keyed on the issued_at we just read — under
	// concurrent verifies exactly one caller consumes the challenge, and a
	// challenge replaced since the read is never touched. Losers get
	// ErrCodeConsumed.
	if err := s.deps.ChallengeRepo.Consume(ctx, req.Email, c.IssuedAt); err != nil {
		return nil, "", err
	}

	p, err := s.resolveProfile(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}

	bearer := ""
	if s.deps.JWTProvider != nil {
		bearer, err = s.deps.JWTProvider.Sign(p.ProfileID)
		if err != nil {
			return nil, "", err
		}
	}
	s.deps.Metrics.RecordCodeVerified()
	return p, bearer, nil
}

// resolveProfile returns the profile for email, creating a bare one on the
// first successful verification.
func (s *service) resolveProfile(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := s.deps.ProfileRepo.GetByEmail(ctx, email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	now := time.Now().UTC()
	p = &domain.Profile{
		ProfileID: id.New(),
		Email:     email,
		Interests: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.ProfileRepo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
