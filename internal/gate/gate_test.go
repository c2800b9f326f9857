package gate

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsageService struct {
	rateAllowed bool
	rateErr     error
	canPerform  bool
	canErr      error
	limits      domain.UsageLimits
	limitsErr   error

	rateCalls    int
	performCalls int
	tracked      []*domain.UsageEvent
}

func (f *fakeUsageService) RateLimitAllows(ctx context.Context, userID, endpoint, method string) (bool, error) {
	f.rateCalls++
	return f.rateAllowed, f.rateErr
}

func (f *fakeUsageService) CanPerform(ctx context.Context, userID string, feature domain.FeatureType) (bool, error) {
	f.performCalls++
	return f.canPerform, f.canErr
}

func (f *fakeUsageService) UsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error) {
	return f.limits, f.limitsErr
}

func (f *fakeUsageService) Track(event *domain.UsageEvent) {
	f.tracked = append(f.tracked, event)
}

type fakeMetrics struct {
	allowed        []string
	denied         map[string][]string
	trackingFailed []string
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{denied: make(map[string][]string)}
}

func (m *fakeMetrics) IncAllowed(feature string) {
	m.allowed = append(m.allowed, feature)
}

func (m *fakeMetrics) IncDenied(feature string, reason string) {
	m.denied[feature] = append(m.denied[feature], reason)
}

func (m *fakeMetrics) IncTrackingFailed(feature string) {
	m.trackingFailed = append(m.trackingFailed, feature)
}

func testLogger() *logger.Logger {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return log
}

func testInput() EnforceInput {
	return EnforceInput{
		Feature:    domain.FeatureChat,
		Endpoint:   "/api/v1/chat",
		Method:     "POST",
		TrackUsage: true,
		Action:     "message_sent",
		UserAgent:  "test-agent",
		ClientIP:   "203.0.113.7",
	}
}

func TestEnforce_AnonymousDenied(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: true, canPerform: true}
	g := New(usage, newFakeMetrics(), testLogger())

	decision := g.Enforce(context.Background(), nil, testInput())

	require.False(t, decision.Allowed)
	assert.Equal(t, 401, decision.Denial.StatusCode)
	assert.Equal(t, "Authentication required", decision.Denial.Body.Error)
	assert.Zero(t, usage.rateCalls, "no store calls for anonymous requests")
	assert.Zero(t, usage.performCalls)
	assert.Empty(t, usage.tracked)
}

func TestEnforce_EmptyUserIDDenied(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: true, canPerform: true}
	g := New(usage, newFakeMetrics(), testLogger())

	decision := g.Enforce(context.Background(), &domain.User{}, testInput())

	require.False(t, decision.Allowed)
	assert.Equal(t, 401, decision.Denial.StatusCode)
}

func TestEnforce_RateLimited(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: false, canPerform: true}
	g := New(usage, newFakeMetrics(), testLogger())

	before := time.Now().Unix()
	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.False(t, decision.Allowed)
	denial := decision.Denial
	assert.Equal(t, 429, denial.StatusCode)
	assert.Equal(t, "60", denial.Headers["Retry-After"])
	assert.Equal(t, "60", denial.Headers["X-RateLimit-Limit"])
	assert.Equal(t, "0", denial.Headers["X-RateLimit-Remaining"])

	reset, err := strconv.ParseInt(denial.Headers["X-RateLimit-Reset"], 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, before+60, reset, 2)

	assert.Equal(t, "Rate limit exceeded. Please try again later.", denial.Body.Error)
	assert.Equal(t, 60, denial.Body.RetryAfter)

	assert.Zero(t, usage.performCalls, "quota check must not run after a rate limit denial")
	assert.Empty(t, usage.tracked)
}

func TestEnforce_RateLimitCheckFailsClosed(t *testing.T) {
	usage := &fakeUsageService{rateErr: errors.New("store down"), canPerform: true}
	metrics := newFakeMetrics()
	g := New(usage, metrics, testLogger())

	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.False(t, decision.Allowed)
	assert.Equal(t, 500, decision.Denial.StatusCode)
	assert.Equal(t, "Failed to check usage limits", decision.Denial.Body.Error)
	assert.Contains(t, metrics.denied["chat"], "store_error")
}

func TestEnforce_QuotaCheckFailsClosed(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: true, canErr: errors.New("store down")}
	g := New(usage, newFakeMetrics(), testLogger())

	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.False(t, decision.Allowed)
	assert.Equal(t, 500, decision.Denial.StatusCode)
	assert.Equal(t, "Failed to check usage limits", decision.Denial.Body.Error)
	assert.Empty(t, usage.tracked)
}

func TestEnforce_QuotaDeniedWithLimits(t *testing.T) {
	usage := &fakeUsageService{
		rateAllowed: true,
		canPerform:  false,
		limits: domain.UsageLimits{
			TierID:          domain.TierFree,
			Limits:          map[domain.FeatureType]int{domain.FeatureChat: 10},
			FeaturesEnabled: []domain.FeatureType{domain.FeatureChat},
			CurrentUsage:    map[domain.FeatureType]int{domain.FeatureChat: 10},
		},
	}
	g := New(usage, newFakeMetrics(), testLogger())

	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.False(t, decision.Allowed)
	denial := decision.Denial
	assert.Equal(t, 403, denial.StatusCode)
	assert.Equal(t, "You've reached your monthly limit of 10 chat messages. Upgrade to Catalyst Basic for more!", denial.Body.Error)
	assert.True(t, denial.Body.UpgradeRequired)
	assert.Equal(t, "free", denial.Body.CurrentTier)
	require.NotNil(t, denial.Body.Usage)
	assert.Equal(t, 10, denial.Body.Usage.Used)
	assert.Equal(t, 10, denial.Body.Usage.Limit)
	assert.Empty(t, usage.tracked, "denied requests are never tracked")
}

func TestEnforce_QuotaDeniedLimitsFetchFails(t *testing.T) {
	usage := &fakeUsageService{
		rateAllowed: true,
		canPerform:  false,
		limitsErr:   errors.New("store down"),
	}
	g := New(usage, newFakeMetrics(), testLogger())

	in := testInput()
	in.CustomErrorMessage = "Chat limit reached. Upgrade for more!"
	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, in)

	require.False(t, decision.Allowed)
	assert.Equal(t, 403, decision.Denial.StatusCode)
	assert.Equal(t, "Chat limit reached. Upgrade for more!", decision.Denial.Body.Error)
	assert.True(t, decision.Denial.Body.UpgradeRequired)
	assert.Nil(t, decision.Denial.Body.Usage)
}

func TestEnforce_QuotaDeniedGenericFallback(t *testing.T) {
	usage := &fakeUsageService{
		rateAllowed: true,
		canPerform:  false,
		limitsErr:   errors.New("store down"),
	}
	g := New(usage, newFakeMetrics(), testLogger())

	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.False(t, decision.Allowed)
	assert.Equal(t, "You've reached your usage limit. Upgrade for more!", decision.Denial.Body.Error)
}

func TestEnforce_AllowedTracksUsage(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: true, canPerform: true}
	metrics := newFakeMetrics()
	g := New(usage, metrics, testLogger())

	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, testInput())

	require.True(t, decision.Allowed)
	assert.Nil(t, decision.Denial)

	require.Len(t, usage.tracked, 1)
	event := usage.tracked[0]
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, domain.FeatureChat, event.Feature)
	assert.Equal(t, "message_sent", event.Action)
	assert.Equal(t, "/api/v1/chat", event.Endpoint)
	assert.Equal(t, "test-agent", event.UserAgent)
	assert.Equal(t, "203.0.113.7", event.ClientIP)

	assert.Equal(t, []string{"chat"}, metrics.allowed)
}

func TestEnforce_AllowedWithoutTracking(t *testing.T) {
	usage := &fakeUsageService{rateAllowed: true, canPerform: true}
	g := New(usage, newFakeMetrics(), testLogger())

	in := testInput()
	in.TrackUsage = false
	decision := g.Enforce(context.Background(), &domain.User{ID: "u1"}, in)

	require.True(t, decision.Allowed)
	assert.Empty(t, usage.tracked)
}
