package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotaRepository struct {
	mu sync.Mutex

	canPerform  bool
	canErr      error
	rateAllowed bool
	rateErr     error
	trackErr    error

	trackedUserID   string
	trackedFeature  domain.FeatureType
	trackedAction   string
	trackedMetadata map[string]string
	trackDone       chan struct{}
}

func newFakeQuotaRepository() *fakeQuotaRepository {
	return &fakeQuotaRepository{trackDone: make(chan struct{}, 1)}
}

func (f *fakeQuotaRepository) CanUserPerformAction(ctx context.Context, userID string, feature domain.FeatureType) (bool, error) {
	return f.canPerform, f.canErr
}

func (f *fakeQuotaRepository) GetUserUsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error) {
	return domain.UsageLimits{}, nil
}

func (f *fakeQuotaRepository) TrackFeatureUsage(ctx context.Context, userID string, feature domain.FeatureType, action string, metadata map[string]string) error {
	f.mu.Lock()
	f.trackedUserID = userID
	f.trackedFeature = feature
	f.trackedAction = action
	f.trackedMetadata = metadata
	f.mu.Unlock()
	f.trackDone <- struct{}{}
	return f.trackErr
}

func (f *fakeQuotaRepository) CheckAPIRateLimit(ctx context.Context, userID, endpoint, method string) (bool, error) {
	return f.rateAllowed, f.rateErr
}

func (f *fakeQuotaRepository) CanUserUseVoice(ctx context.Context, userID, voiceID string) (bool, error) {
	return true, nil
}

type fakeGateMetrics struct {
	mu             sync.Mutex
	trackingFailed []string
	failedCh       chan struct{}
}

func newFakeGateMetrics() *fakeGateMetrics {
	return &fakeGateMetrics{failedCh: make(chan struct{}, 1)}
}

func (m *fakeGateMetrics) IncAllowed(feature string)               {}
func (m *fakeGateMetrics) IncDenied(feature string, reason string) {}

func (m *fakeGateMetrics) IncTrackingFailed(feature string) {
	m.mu.Lock()
	m.trackingFailed = append(m.trackingFailed, feature)
	m.mu.Unlock()
	m.failedCh <- struct{}{}
}

func newUsageService(repo *fakeQuotaRepository, m *fakeGateMetrics) *UsageService {
	log := logger.New(logger.FATAL)
	log.SetOutput(io.Discard)
	return NewUsageService(repo, nil, m, log)
}

func TestUsageService_ChecksDelegateToStore(t *testing.T) {
	repo := newFakeQuotaRepository()
	repo.canPerform = true
	repo.rateAllowed = true
	svc := newUsageService(repo, newFakeGateMetrics())
	ctx := context.Background()

	allowed, err := svc.RateLimitAllows(ctx, "u1", "/api/v1/chat", "POST")
	require.NoError(t, err)
	assert.True(t, allowed)

	permitted, err := svc.CanPerform(ctx, "u1", domain.FeatureChat)
	require.NoError(t, err)
	assert.True(t, permitted)
}

func TestUsageService_StoreErrorsSurface(t *testing.T) {
	repo := newFakeQuotaRepository()
	repo.canErr = errors.New("store down")
	repo.rateErr = errors.New("store down")
	svc := newUsageService(repo, newFakeGateMetrics())
	ctx := context.Background()

	_, err := svc.CanPerform(ctx, "u1", domain.FeatureChat)
	assert.Error(t, err)

	_, err = svc.RateLimitAllows(ctx, "u1", "/api/v1/chat", "POST")
	assert.Error(t, err)
}

func TestUsageService_TrackRecordsEventInBackground(t *testing.T) {
	repo := newFakeQuotaRepository()
	svc := newUsageService(repo, newFakeGateMetrics())

	event := &domain.UsageEvent{
		UserID:    "u1",
		Feature:   domain.FeatureVoice,
		Action:    "transcription",
		Endpoint:  "/api/v1/voice/transcribe",
		UserAgent: "test-agent",
		ClientIP:  "203.0.113.7",
		Metadata:  map[string]string{"duration_ms": "1200"},
	}
	svc.Track(event)

	select {
	case <-repo.trackDone:
	case <-time.After(2 * time.Second):
		t.Fatal("tracking call never reached the store")
	}

	assert.NotEqual(t, uuid.Nil, event.ID, "Track assigns an event ID")
	assert.False(t, event.CreatedAt.IsZero())

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, "u1", repo.trackedUserID)
	assert.Equal(t, domain.FeatureVoice, repo.trackedFeature)
	assert.Equal(t, "transcription", repo.trackedAction)
	assert.Equal(t, "/api/v1/voice/transcribe", repo.trackedMetadata["endpoint"])
	assert.Equal(t, "test-agent", repo.trackedMetadata["user_agent"])
	assert.Equal(t, "203.0.113.7", repo.trackedMetadata["client_ip"])
	assert.Equal(t, "1200", repo.trackedMetadata["duration_ms"])
}

func TestUsageService_TrackFailureIsSwallowed(t *testing.T) {
	repo := newFakeQuotaRepository()
	repo.trackErr = errors.New("store down")
	metrics := newFakeGateMetrics()
	svc := newUsageService(repo, metrics)

	// Must not panic and must not surface the error to the caller.
	svc.Track(&domain.UsageEvent{UserID: "u1", Feature: domain.FeatureChat, Action: "message_sent"})

	select {
	case <-metrics.failedCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tracking failure was never counted")
	}

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, []string{"chat"}, metrics.trackingFailed)
}
