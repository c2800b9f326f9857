package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitReached(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		hasEntry bool
		used     int
		want     bool
	}{
		{name: "under limit", limit: 10, hasEntry: true, used: 9, want: false},
		{name: "at limit", limit: 10, hasEntry: true, used: 10, want: true},
		{name: "over limit", limit: 10, hasEntry: true, used: 25, want: true},
		{name: "zero limit", limit: 0, hasEntry: true, used: 0, want: true},
		{name: "unlimited", limit: Unlimited, hasEntry: true, used: 10000, want: false},
		{name: "no limit entry", hasEntry: false, used: 10000, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := UsageLimits{
				Limits:       map[FeatureType]int{},
				CurrentUsage: map[FeatureType]int{FeatureVoice: tt.used},
			}
			if tt.hasEntry {
				limits.Limits[FeatureVoice] = tt.limit
			}
			assert.Equal(t, tt.want, limits.LimitReached(FeatureVoice))
		})
	}
}

func TestSnapshot(t *testing.T) {
	limits := UsageLimits{
		Limits:       map[FeatureType]int{FeatureChat: 100},
		CurrentUsage: map[FeatureType]int{FeatureChat: 42},
	}

	snap := limits.Snapshot(FeatureChat)
	assert.Equal(t, FeatureChat, snap.Feature)
	assert.Equal(t, 42, snap.Used)
	assert.Equal(t, 100, snap.Limit)

	// A feature with no limits entry reads as unlimited.
	missing := limits.Snapshot(FeatureDocument)
	assert.Equal(t, Unlimited, missing.Limit)
	assert.Equal(t, 0, missing.Used)
}
