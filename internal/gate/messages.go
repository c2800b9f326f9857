package gate

import (
	"fmt"

	"github.com/lorenzodc/catalyst-api/internal/domain"
)

// featureDisplayNames are used in "not available in your plan" denials.
var featureDisplayNames = map[domain.FeatureType]string{
	domain.FeatureChat:       "Chat",
	domain.FeatureVoice:      "Voice",
	domain.FeatureDocument:   "Document analysis",
	domain.FeatureAssessment: "Assessment",
}

// featureUnits are the plural nouns used in monthly-limit denials.
var featureUnits = map[domain.FeatureType]string{
	domain.FeatureChat:       "chat messages",
	domain.FeatureVoice:      "voice messages",
	domain.FeatureDocument:   "document analyses",
	domain.FeatureAssessment: "assessments",
}

// genericLimitMessage is the denial text when the snapshot has no concrete
// limit to cite.
const genericLimitMessage = "You've reached your usage limit. Upgrade for more!"

// DenialMessage builds the human-readable quota denial for a feature given
// the user's limits snapshot. Pure function of its inputs.
func DenialMessage(feature domain.FeatureType, limits domain.UsageLimits) string {
	if !limits.FeatureEnabled(feature) {
		return fmt.Sprintf("%s is not available in %s. Upgrade to access this feature.",
			displayName(feature), limits.TierID.DisplayName())
	}

	if !limits.LimitReached(feature) {
		// The store denied but the snapshot shows no reached cap: the
		// feature is unlimited, the limit entry is missing, or the counter
		// is stale. Nothing concrete to cite.
		return genericLimitMessage
	}

	limit := limits.Limits[feature]
	if next, ok := limits.TierID.Next(); ok {
		return fmt.Sprintf("You've reached your monthly limit of %d %s. Upgrade to %s for more!",
			limit, unit(feature), next.DisplayName())
	}

	// Top tier has nothing to upgrade to.
	return fmt.Sprintf("You've reached your monthly limit of %d %s. Contact us for higher limits.",
		limit, unit(feature))
}

func displayName(feature domain.FeatureType) string {
	if name, ok := featureDisplayNames[feature]; ok {
		return name
	}
	return string(feature)
}

func unit(feature domain.FeatureType) string {
	if u, ok := featureUnits[feature]; ok {
		return u
	}
	return string(feature) + " actions"
}
