package gate

import (
	"testing"

	"github.com/lorenzodc/catalyst-api/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDenialMessage_FeatureNotInTier(t *testing.T) {
	limits := domain.UsageLimits{
		TierID:          domain.TierFree,
		FeaturesEnabled: []domain.FeatureType{domain.FeatureChat},
	}

	assert.Equal(t,
		"Voice is not available in Free Plan. Upgrade to access this feature.",
		DenialMessage(domain.FeatureVoice, limits))
	assert.Equal(t,
		"Document analysis is not available in Free Plan. Upgrade to access this feature.",
		DenialMessage(domain.FeatureDocument, limits))
}

func TestDenialMessage_LimitReached(t *testing.T) {
	limits := domain.UsageLimits{
		TierID:          domain.TierCatalystBasic,
		Limits:          map[domain.FeatureType]int{domain.FeatureChat: 100, domain.FeatureVoice: 50},
		FeaturesEnabled: []domain.FeatureType{domain.FeatureChat, domain.FeatureVoice},
		CurrentUsage:    map[domain.FeatureType]int{domain.FeatureChat: 100, domain.FeatureVoice: 50},
	}

	assert.Equal(t,
		"You've reached your monthly limit of 100 chat messages. Upgrade to Catalyst Plus for more!",
		DenialMessage(domain.FeatureChat, limits))
	assert.Equal(t,
		"You've reached your monthly limit of 50 voice messages. Upgrade to Catalyst Plus for more!",
		DenialMessage(domain.FeatureVoice, limits))
}

func TestDenialMessage_TopTier(t *testing.T) {
	limits := domain.UsageLimits{
		TierID:          domain.TierEnterprise,
		Limits:          map[domain.FeatureType]int{domain.FeatureAssessment: 1000},
		FeaturesEnabled: []domain.FeatureType{domain.FeatureAssessment},
		CurrentUsage:    map[domain.FeatureType]int{domain.FeatureAssessment: 1000},
	}

	assert.Equal(t,
		"You've reached your monthly limit of 1000 assessments. Contact us for higher limits.",
		DenialMessage(domain.FeatureAssessment, limits))
}

func TestDenialMessage_UnlimitedFeature(t *testing.T) {
	limits := domain.UsageLimits{
		TierID:          domain.TierCatalystPlus,
		Limits:          map[domain.FeatureType]int{domain.FeatureVoice: domain.Unlimited},
		FeaturesEnabled: []domain.FeatureType{domain.FeatureVoice},
		CurrentUsage:    map[domain.FeatureType]int{domain.FeatureVoice: 10000},
	}

	// An unlimited feature never cites a numeric cap, however high the counter.
	assert.Equal(t, genericLimitMessage, DenialMessage(domain.FeatureVoice, limits))
}

func TestDenialMessage_MissingLimitEntry(t *testing.T) {
	limits := domain.UsageLimits{
		TierID:          domain.TierCatalystBasic,
		Limits:          map[domain.FeatureType]int{domain.FeatureChat: 100},
		FeaturesEnabled: []domain.FeatureType{domain.FeatureChat, domain.FeatureDocument},
		CurrentUsage:    map[domain.FeatureType]int{domain.FeatureDocument: 3},
	}

	// Enabled but without a limits entry: never "monthly limit of 0".
	assert.Equal(t, genericLimitMessage, DenialMessage(domain.FeatureDocument, limits))
}
