package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeatureType is the unit of quota metering. Adding a feature means extending
// this set and the denial-message tables symmetrically.
type FeatureType string

const (
	FeatureChat       FeatureType = "chat"
	FeatureVoice      FeatureType = "voice"
	FeatureDocument   FeatureType = "document"
	FeatureAssessment FeatureType = "assessment"
)

// AllFeatures lists every known feature type.
var AllFeatures = []FeatureType{FeatureChat, FeatureVoice, FeatureDocument, FeatureAssessment}

// Valid reports whether f is a known feature type.
func (f FeatureType) Valid() bool {
	switch f {
	case FeatureChat, FeatureVoice, FeatureDocument, FeatureAssessment:
		return true
	}
	return false
}

// Unlimited is the sentinel limit value for features without a monthly cap.
const Unlimited = -1

// UsageLimits is a per-user snapshot of tier, per-feature monthly limits,
// enabled features and current-period usage, as reported by the quota store.
// current_usage <= limit is what the gate enforces, not a stored invariant:
// the counter can transiently exceed the limit under concurrent requests.
type UsageLimits struct {
	TierID          TierID              `json:"tier_id"`
	Limits          map[FeatureType]int `json:"limits"`
	FeaturesEnabled []FeatureType       `json:"features_enabled"`
	CurrentUsage    map[FeatureType]int `json:"current_usage"`
}

// FeatureEnabled reports whether the tier includes the feature at all.
func (ul UsageLimits) FeatureEnabled(f FeatureType) bool {
	for _, enabled := range ul.FeaturesEnabled {
		if enabled == f {
			return true
		}
	}
	return false
}

// LimitReached reports whether usage has hit the numeric monthly limit.
// Unlimited features never reach their limit.
func (ul UsageLimits) LimitReached(f FeatureType) bool {
	limit, ok := ul.Limits[f]
	if !ok || limit == Unlimited {
		return false
	}
	return ul.CurrentUsage[f] >= limit
}

// UsageSnapshot is the usage detail attached to a quota denial.
type UsageSnapshot struct {
	Feature FeatureType `json:"feature"`
	Used    int         `json:"used"`
	Limit   int         `json:"limit"`
}

// Snapshot extracts the denial-facing usage view for one feature.
func (ul UsageLimits) Snapshot(f FeatureType) UsageSnapshot {
	limit, ok := ul.Limits[f]
	if !ok {
		limit = Unlimited
	}
	return UsageSnapshot{
		Feature: f,
		Used:    ul.CurrentUsage[f],
		Limit:   limit,
	}
}

// UsageEvent is an immutable record of one feature invocation, appended for
// analytics. Write-only from this service's perspective.
type UsageEvent struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	Feature   FeatureType       `json:"feature"`
	Action    string            `json:"action"`
	Endpoint  string            `json:"endpoint"`
	UserAgent string            `json:"user_agent,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
