package http

import (
	"net/http"

	"github.com/swipe-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/swipe-api/internal/infrastructure/jwt"
	"github.com/swipe-api/internal/infrastructure/smtp"
	"github.com/swipe-api/internal/infrastructure/sns"
	"github.com/swipe-api/internal/metrics"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	ProfileRepo   *dynamo.ProfileRepo
	ChallengeRepo *dynamo.ChallengeRepo
	SwipeRepo     *dynamo.SwipeRepo
	MatchRepo     *dynamo.MatchRepo
	MessageRepo   *dynamo.MessageRepo
	Mailer        smtp.Mailer
	SMSSender     sns.SMSSender
	JWTProvider   *jwtinfra.Provider
	Metrics       metrics.Recorder
	// MetricsHandler serves the Prometheus scrape endpoint when set.
	MetricsHandler http.Handler
}
