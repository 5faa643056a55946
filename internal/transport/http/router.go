package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swipe-api/internal/application/auth"
	"github.com/swipe-api/internal/application/chat"
	"github.com/swipe-api/internal/application/match"
	"github.com/swipe-api/internal/application/profile"
	"github.com/swipe-api/internal/config"
	"github.com/swipe-api/internal/transport/http/handler"
	appmiddleware "github.com/swipe-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to the OTP endpoints, which
	// trigger outbound mail/SMS.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authDeps := auth.ServiceDeps{
		ChallengeRepo: deps.ChallengeRepo,
		ProfileRepo:   deps.ProfileRepo,
		Mailer:        deps.Mailer,
		SMSSender:     deps.SMSSender,
		Metrics:       deps.Metrics,
		CodeTTL:       cfg.OTPTTL,
		CodeDigits:    cfg.OTPDigits,
	}
	// Leave the signer interface nil when no provider is configured; a typed
	// nil pointer would slip past the service's nil check.
	if deps.JWTProvider != nil {
		authDeps.JWTProvider = deps.JWTProvider
	}
	authSvc := auth.NewService(authDeps)
	profileSvc := profile.NewService(deps.ProfileRepo)
	matchSvc := match.NewService(match.ServiceDeps{
		SwipeRepo:   deps.SwipeRepo,
		MatchRepo:   deps.MatchRepo,
		ProfileRepo: deps.ProfileRepo,
		Metrics:     deps.Metrics,
	})
	chatSvc := chat.NewService(chat.ServiceDeps{
		MatchRepo:   deps.MatchRepo,
		MessageRepo: deps.MessageRepo,
		Metrics:     deps.Metrics,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, !cfg.IsProduction())
	profileH := handler.NewProfileHandler(profileSvc)
	swipeH := handler.NewSwipeHandler(matchSvc)
	matchH := handler.NewMatchHandler(matchSvc)
	messageH := handler.NewMessageHandler(chatSvc)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/request-otp", authH.RequestOTP)
		r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profiles/me", profileH.GetMe)
			r.Put("/profiles/me", profileH.UpdateMe)

			r.Get("/discover", swipeH.Discover)
			r.Post("/swipes", swipeH.Submit)

			r.Get("/matches", matchH.List)
			r.Get("/matches/{id}/messages", messageH.List)
			r.Post("/matches/{id}/messages", messageH.Send)
		})
	})

	return r
}
