// Package gate enforces subscription usage limits in front of every
// metered feature endpoint.
package gate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/metrics"
	"github.com/lorenzodc/catalyst-api/pkg/logger"
)

// rateLimitRetryAfter is the advertised recovery delay for rate-limited
// requests. The reset value is always now + this window; the store owns the
// real sliding window and this service does not try to reconstruct it.
const rateLimitRetryAfter = 60

// rateLimitPerMinute is the advertised per-minute request budget.
const rateLimitPerMinute = 60

// UsageService is what the gate needs from the usage layer. All state
// behind these calls lives in the external quota store.
type UsageService interface {
	// RateLimitAllows checks the (user, endpoint, method) request rate.
	RateLimitAllows(ctx context.Context, userID, endpoint, method string) (bool, error)
	// CanPerform checks whether one more action of the feature is permitted.
	CanPerform(ctx context.Context, userID string, feature domain.FeatureType) (bool, error)
	// UsageLimits fetches the detailed limits snapshot for denial messages.
	UsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error)
	// Track records a usage event asynchronously; it never blocks and
	// never reports failure to the caller.
	Track(event *domain.UsageEvent)
}

// EnforceInput describes one request to be checked.
type EnforceInput struct {
	Feature    domain.FeatureType
	Endpoint   string
	Method     string
	TrackUsage bool
	// Action is the feature action name recorded with usage tracking,
	// e.g. "message_sent" or "transcription".
	Action string
	// CustomErrorMessage replaces the generated quota denial message when
	// the detailed limits snapshot cannot be fetched.
	CustomErrorMessage string
	UserAgent          string
	ClientIP           string
}

// Gate is the enforcement checkpoint placed before feature endpoints.
type Gate struct {
	usage   UsageService
	metrics metrics.GateMetrics
	log     *logger.Logger
}

// New creates a gate over the given usage service.
func New(usage UsageService, m metrics.GateMetrics, log *logger.Logger) *Gate {
	return &Gate{
		usage:   usage,
		metrics: m,
		log:     log,
	}
}

// Enforce runs the ordered checks for one request: authentication, rate
// limit, quota, then optional usage tracking. A nil user means the request
// carried no valid principal; the gate, not the transport layer, owns that
// rejection. Store failures deny the action (fail closed) rather than risk
// unmetered usage.
func (g *Gate) Enforce(ctx context.Context, user *domain.User, in EnforceInput) Decision {
	feature := string(in.Feature)

	if user == nil || user.ID == "" {
		g.metrics.IncDenied(feature, metrics.ReasonUnauthenticated)
		return Deny(&Denial{
			StatusCode: http.StatusUnauthorized,
			Body:       DenialBody{Error: "Authentication required"},
		})
	}

	allowed, err := g.usage.RateLimitAllows(ctx, user.ID, in.Endpoint, in.Method)
	if err != nil {
		g.log.Errorw("Rate limit check failed", "error", err, "userID", user.ID, "endpoint", in.Endpoint)
		g.metrics.IncDenied(feature, metrics.ReasonStoreError)
		return Deny(storeErrorDenial())
	}
	if !allowed {
		g.metrics.IncDenied(feature, metrics.ReasonRateLimited)
		return Deny(rateLimitDenial())
	}

	permitted, err := g.usage.CanPerform(ctx, user.ID, in.Feature)
	if err != nil {
		g.log.Errorw("Usage limit check failed", "error", err, "userID", user.ID, "feature", feature)
		g.metrics.IncDenied(feature, metrics.ReasonStoreError)
		return Deny(storeErrorDenial())
	}

	if !permitted {
		g.metrics.IncDenied(feature, metrics.ReasonQuotaExceeded)
		return Deny(g.quotaDenial(ctx, user, in))
	}

	if in.TrackUsage {
		g.usage.Track(&domain.UsageEvent{
			UserID:    user.ID,
			Feature:   in.Feature,
			Action:    in.Action,
			Endpoint:  in.Endpoint,
			UserAgent: in.UserAgent,
			ClientIP:  in.ClientIP,
			CreatedAt: time.Now().UTC(),
		})
	}

	g.metrics.IncAllowed(feature)
	return Allow()
}

// quotaDenial re-fetches the detailed limits to build the human-readable
// message. If that read fails the denial still stands, with the caller's
// custom message or a generic one.
func (g *Gate) quotaDenial(ctx context.Context, user *domain.User, in EnforceInput) *Denial {
	limits, err := g.usage.UsageLimits(ctx, user.ID)
	if err != nil {
		g.log.Warnw("Failed to fetch usage limits for denial message", "error", err, "userID", user.ID)
		message := in.CustomErrorMessage
		if message == "" {
			message = genericLimitMessage
		}
		return &Denial{
			StatusCode: http.StatusForbidden,
			Body: DenialBody{
				Error:           message,
				UpgradeRequired: true,
			},
		}
	}

	usage := limits.Snapshot(in.Feature)
	return &Denial{
		StatusCode: http.StatusForbidden,
		Body: DenialBody{
			Error:           DenialMessage(in.Feature, limits),
			UpgradeRequired: true,
			CurrentTier:     string(limits.TierID),
			Usage:           &usage,
		},
	}
}

func rateLimitDenial() *Denial {
	reset := time.Now().Add(rateLimitRetryAfter * time.Second).Unix()
	return &Denial{
		StatusCode: http.StatusTooManyRequests,
		Headers: map[string]string{
			"Retry-After":           fmt.Sprintf("%d", rateLimitRetryAfter),
			"X-RateLimit-Limit":     fmt.Sprintf("%d", rateLimitPerMinute),
			"X-RateLimit-Remaining": "0",
			"X-RateLimit-Reset":     fmt.Sprintf("%d", reset),
		},
		Body: DenialBody{
			Error:      "Rate limit exceeded. Please try again later.",
			RetryAfter: rateLimitRetryAfter,
		},
	}
}

func storeErrorDenial() *Denial {
	return &Denial{
		StatusCode: http.StatusInternalServerError,
		Body:       DenialBody{Error: "Failed to check usage limits"},
	}
}
