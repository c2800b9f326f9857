package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lorenzodc/catalyst-api/internal/domain"
	"github.com/lorenzodc/catalyst-api/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QuotaRepository calls the quota store's stored procedures over pgx.
// The procedures own all counter and window state; every call here is a
// fresh read with no local caching.
type QuotaRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewQuotaRepository creates a quota repository backed by the given pool.
func NewQuotaRepository(pool *pgxpool.Pool, log *logger.Logger) *QuotaRepository {
	return &QuotaRepository{
		pool: pool,
		log:  log,
	}
}

// CanUserPerformAction calls can_user_perform_action(user_id, action_type).
func (r *QuotaRepository) CanUserPerformAction(ctx context.Context, userID string, feature domain.FeatureType) (bool, error) {
	var allowed bool
	err := r.pool.QueryRow(ctx,
		`SELECT can_user_perform_action($1, $2)`,
		userID, string(feature),
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("%w: can_user_perform_action: %v", domain.ErrQuotaStoreUnavailable, err)
	}
	return allowed, nil
}

// usageLimitsRow is the wire shape of get_user_usage_limits' jsonb result.
type usageLimitsRow struct {
	TierID          string         `json:"tier_id"`
	Limits          map[string]int `json:"limits"`
	FeaturesEnabled []string       `json:"features_enabled"`
	CurrentUsage    map[string]int `json:"current_usage"`
}

// GetUserUsageLimits calls get_user_usage_limits(user_id) and decodes the
// jsonb snapshot it returns.
func (r *QuotaRepository) GetUserUsageLimits(ctx context.Context, userID string) (domain.UsageLimits, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT get_user_usage_limits($1)`,
		userID,
	).Scan(&raw)
	if err != nil {
		return domain.UsageLimits{}, fmt.Errorf("%w: get_user_usage_limits: %v", domain.ErrQuotaStoreUnavailable, err)
	}

	var row usageLimitsRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.UsageLimits{}, fmt.Errorf("get_user_usage_limits: decode: %w", err)
	}

	limits := domain.UsageLimits{
		TierID:          domain.TierID(row.TierID),
		Limits:          make(map[domain.FeatureType]int, len(row.Limits)),
		FeaturesEnabled: make([]domain.FeatureType, 0, len(row.FeaturesEnabled)),
		CurrentUsage:    make(map[domain.FeatureType]int, len(row.CurrentUsage)),
	}
	for feature, limit := range row.Limits {
		limits.Limits[domain.FeatureType(feature)] = limit
	}
	for _, feature := range row.FeaturesEnabled {
		limits.FeaturesEnabled = append(limits.FeaturesEnabled, domain.FeatureType(feature))
	}
	for feature, used := range row.CurrentUsage {
		limits.CurrentUsage[domain.FeatureType(feature)] = used
	}

	return limits, nil
}

// TrackFeatureUsage calls track_feature_usage(user_id, feature_type,
// feature_action, metadata).
func (r *QuotaRepository) TrackFeatureUsage(ctx context.Context, userID string, feature domain.FeatureType, action string, metadata map[string]string) error {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("track_feature_usage: encode metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`SELECT track_feature_usage($1, $2, $3, $4)`,
		userID, string(feature), action, meta,
	)
	if err != nil {
		return fmt.Errorf("track_feature_usage: %w", err)
	}
	return nil
}

// CheckAPIRateLimit calls check_api_rate_limit(user_id, endpoint, method).
func (r *QuotaRepository) CheckAPIRateLimit(ctx context.Context, userID, endpoint, method string) (bool, error) {
	var allowed bool
	err := r.pool.QueryRow(ctx,
		`SELECT check_api_rate_limit($1, $2, $3)`,
		userID, endpoint, method,
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("%w: check_api_rate_limit: %v", domain.ErrQuotaStoreUnavailable, err)
	}
	return allowed, nil
}

// CanUserUseVoice calls can_user_use_voice(user_id, voice_id).
func (r *QuotaRepository) CanUserUseVoice(ctx context.Context, userID, voiceID string) (bool, error) {
	var allowed bool
	err := r.pool.QueryRow(ctx,
		`SELECT can_user_use_voice($1, $2)`,
		userID, voiceID,
	).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("%w: can_user_use_voice: %v", domain.ErrQuotaStoreUnavailable, err)
	}
	return allowed, nil
}
