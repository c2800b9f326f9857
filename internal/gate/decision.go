package gate

import "github.com/lorenzodc/catalyst-api/internal/domain"

// Decision is the tagged result of a gate check. Callers must branch on
// Allowed explicitly; a denial carries everything needed to write the
// HTTP response unmodified.
type Decision struct {
	Allowed bool
	Denial  *Denial
}

// Denial describes a rejected request.
type Denial struct {
	StatusCode int
	Headers    map[string]string
	Body       DenialBody
}

// DenialBody is the JSON body of a denial response.
type DenialBody struct {
	Error           string                `json:"error"`
	RetryAfter      int                   `json:"retryAfter,omitempty"`
	UpgradeRequired bool                  `json:"upgradeRequired,omitempty"`
	CurrentTier     string                `json:"currentTier,omitempty"`
	Usage           *domain.UsageSnapshot `json:"usage,omitempty"`
}

// Allow returns an allowing decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision.
func Deny(denial *Denial) Decision {
	return Decision{Allowed: false, Denial: denial}
}
