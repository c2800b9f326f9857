package service

import (
	"context"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/internal/kafka"
	"github.com/lorenzodc/catalyst-api/internal/metrics"
	"github.com/lorenzodc/catalyst-api/internal/repository"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/google/uuid"
)

// trackTimeout bounds one fire-and-forget tracking call.
const trackTimeout = 10 * time.Second

// UsageService fronts the quota store for the gate and the feature
// endpoints. Checks are synchronous fresh reads; tracking is asynchronous
// and its failures are logged, never surfaced - losing an analytics event
// costs less than blocking a user who already passed the permission check.
type UsageService struct {
	repo     repository.QuotaRepository
	producer kafka.Producer
	metrics  metrics.GateMetrics
	log      *logger.Logger
}

// NewUsageService creates the usage service. producer may be nil when event
// publishing is disabled.
func NewUsageService(repo repository.QuotaRepository, producer kafka.Producer, m metrics.GateMetrics, log *logger.Logger) *UsageService {
	return &UsageService{
		repo:     repo,
		producer: producer,
		metrics:  m,
		log:      log,
	}
}

// RateLimitAllows checks the (user, endpoint, method) request rate against
// the store's sliding window.
func (s *UsageService) RateLimitAllows(ctx context.Context, userID, endpoint, method string) (bool, error) {
	return s.repo.CheckAPIRateLimit(ctx, userID, endpoint, method)
}

// CanPerform checks whether one more action of the feature is permitted.
func (s *UsageService) CanPerform(ctx context.Context, userID string, feature domain.FeatureType) (bool, error) {
	if !feature.Valid() {
		return false, domain.ErrUnknownFeature
	}
	return s.repo.CanUserPerformAction(ctx, userID, feature)
}

// UsageLimits fetches the user's detailed limits snapshot.
func (s *UsageService) UsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error) {
	return s.repo.GetUserUsageLimits(ctx, userID)
}

// CanUseVoice is the voice-specific capability check.
func (s *UsageService) CanUseVoice(ctx context.Context, userID, voiceID string) (bool, error) {
	return s.repo.CanUserUseVoice(ctx, userID, voiceID)
}

// Track records one usage event: the store counter increment and the
// analytics topic publish both happen in the background. Note the permission
// check and this increment are two separate calls - concurrent requests can
// both pass the check before either increment lands. That is accepted soft
// enforcement, not a billing guarantee.
func (s *UsageService) Track(event *domain.UsageEvent) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()

		metadata := map[string]string{
			"endpoint":   event.Endpoint,
			"user_agent": event.UserAgent,
			"client_ip":  event.ClientIP,
		}
		for k, v := range event.Metadata {
			metadata[k] = v
		}

		if err := s.repo.TrackFeatureUsage(ctx, event.UserID, event.Feature, event.Action, metadata); err != nil {
			s.log.Errorw("Failed to track feature usage", "error", err, "userID", event.UserID, "feature", event.Feature)
			s.metrics.IncTrackingFailed(string(event.Feature))
		}

		if s.producer != nil {
			if err := s.producer.PublishUsageEvent(ctx, event); err != nil {
				s.log.Errorw("Failed to publish usage event", "error", err, "eventID", event.ID)
			}
		}
	}()
}
