package domain

// TierID is a named subscription level.
type TierID string

const (
	TierFree          TierID = "free"
	TierCatalystBasic TierID = "catalyst_basic"
	TierCatalystPlus  TierID = "catalyst_plus"
	TierEnterprise    TierID = "enterprise"
)

var tierDisplayNames = map[TierID]string{
	TierFree:          "Free Plan",
	TierCatalystBasic: "Catalyst Basic",
	TierCatalystPlus:  "Catalyst Plus",
	TierEnterprise:    "Enterprise",
}

var nextTier = map[TierID]TierID{
	TierFree:          TierCatalystBasic,
	TierCatalystBasic: TierCatalystPlus,
	TierCatalystPlus:  TierEnterprise,
}

// DisplayName returns the human-readable tier name.
func (t TierID) DisplayName() string {
	if name, ok := tierDisplayNames[t]; ok {
		return name
	}
	return string(t)
}

// Next returns the tier above this one and whether one exists.
// Enterprise is the top tier.
func (t TierID) Next() (TierID, bool) {
	next, ok := nextTier[t]
	return next, ok
}

// User is an authenticated principal. The tier and usage counters live in the
// quota store, not on the user itself.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
