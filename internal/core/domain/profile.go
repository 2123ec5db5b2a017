package domain

// EngagementLevel is a coarse classification of conversation depth
// based on the number of user-authored turns.
type EngagementLevel string

// Engagement levels, lowest to highest.
const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// String returns the string representation.
func (l EngagementLevel) String() string {
	return string(l)
}

// UserProfile aggregates the interest and intent signals extracted from
// one conversation. It is recomputed from scratch on every analysis call
// and owned by the calling session for its lifetime.
type UserProfile struct {
	// TopInterests holds up to 3 category labels by descending
	// occurrence count. Ties break by first-encountered category.
	TopInterests []string `json:"top_interests"`

	// AllInterests maps every detected category to its occurrence count
	// across the conversation's user turns.
	AllInterests map[string]int `json:"all_interests"`

	// PurchaseIntent is the mean per-turn intent score in [0, 1].
	PurchaseIntent float64 `json:"purchase_intent"`

	// Engagement classifies the conversation depth.
	Engagement EngagementLevel `json:"engagement_level"`
}
