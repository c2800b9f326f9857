package repository

import (
	"context"

	"github.com/lorenzodc/catalyst-api/internal/domain"
)

// QuotaRepository is the call contract against the external quota store.
// The store owns atomicity of counter increments and the real rate-limit
// windows; this service only issues request/response calls and never caches
// the answers.
type QuotaRepository interface {
	// CanUserPerformAction asks the store whether the user may perform one
	// more action of the given feature type right now.
	CanUserPerformAction(ctx context.Context, userID string, feature domain.FeatureType) (bool, error)

	// GetUserUsageLimits fetches the user's tier, per-feature limits,
	// enabled features and current-period usage.
	GetUserUsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error)

	// TrackFeatureUsage appends one usage event to the store's counters.
	TrackFeatureUsage(ctx context.Context, userID string, feature domain.FeatureType, action string, metadata map[string]string) error

	// CheckAPIRateLimit asks the store's sliding window whether the
	// (user, endpoint, method) tuple is within its request rate.
	CheckAPIRateLimit(ctx context.Context, userID, endpoint, method string) (bool, error)

	// CanUserUseVoice is the secondary, voice-specific capability check
	// layered after the generic gate on voice endpoints.
	CanUserUseVoice(ctx context.Context, userID, voiceID string) (bool, error)
}
