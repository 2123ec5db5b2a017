package services

import (
	"math"
	"strings"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// categoryKeywords maps product categories to the message keywords that
// signal interest in them. Order matters: interests are reported in
// table order, which keeps tie-breaks deterministic.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"electronics", []string{"laptop", "phone", "tablet", "computer", "headphones", "speaker", "camera", "tv", "monitor"}},
	{"fashion", []string{"shirt", "dress", "jeans", "shoes", "jacket", "clothing", "apparel", "fashion"}},
	{"home", []string{"furniture", "decor", "kitchen", "bedding", "appliances", "home"}},
	{"sports", []string{"fitness", "gym", "yoga", "sports", "exercise", "workout"}},
	{"books", []string{"book", "novel", "magazine", "reading", "literature"}},
	{"beauty", []string{"cosmetics", "skincare", "makeup", "beauty", "fragrance"}},
	{"toys", []string{"toy", "game", "kids", "children", "baby"}},
}

// purchaseIntentSignals are phrases whose presence in a user message
// raises the purchase-intent score.
var purchaseIntentSignals = []string{
	"buy", "purchase", "looking for", "need", "want", "interested in",
	"price", "cost", "how much", "available", "in stock", "delivery",
}

// maxTopInterests caps the TopInterests list in a profile.
const maxTopInterests = 3

// BehaviorAnalyzer extracts an interest profile from conversation
// history using keyword matching. It holds no per-conversation state;
// every analysis starts from scratch.
type BehaviorAnalyzer struct {
	intentDivisor         float64
	highEngagementTurns   int
	mediumEngagementTurns int
}

// NewBehaviorAnalyzer creates a behaviour analyzer with the given
// ranker thresholds.
func NewBehaviorAnalyzer(settings domain.RankerSettings) *BehaviorAnalyzer {
	return &BehaviorAnalyzer{
		intentDivisor:         settings.IntentDivisor,
		highEngagementTurns:   settings.HighEngagementTurns,
		mediumEngagementTurns: settings.MediumEngagementTurns,
	}
}

// ExtractInterests returns the categories whose keywords appear in the
// message, in table order, each at most once. Matching is
// case-insensitive substring containment.
func (a *BehaviorAnalyzer) ExtractInterests(message string) []string {
	lower := strings.ToLower(message)

	var interests []string
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				interests = append(interests, entry.category)
				break
			}
		}
	}
	return interests
}

// DetectIntent scores a message's purchase intent in [0, 1]: the number
// of distinct intent signals present, divided by the configured
// divisor, clamped to 1.
func (a *BehaviorAnalyzer) DetectIntent(message string) float64 {
	lower := strings.ToLower(message)

	matches := 0
	for _, signal := range purchaseIntentSignals {
		if strings.Contains(lower, signal) {
			matches++
		}
	}
	return math.Min(float64(matches)/a.intentDivisor, 1.0)
}

// Analyze recomputes a user profile from the full conversation. Only
// user-authored turns contribute. PurchaseIntent is the mean per-turn
// intent, rounded to two decimals; ties between equally frequent
// interests break by first appearance in the conversation.
func (a *BehaviorAnalyzer) Analyze(history []domain.ChatMessage) domain.UserProfile {
	counts := make(map[string]int)
	var seen []string

	var totalIntent float64
	userTurns := 0

	for _, msg := range history {
		if msg.Role != domain.RoleUser {
			continue
		}

		for _, interest := range a.ExtractInterests(msg.Content) {
			if _, ok := counts[interest]; !ok {
				seen = append(seen, interest)
			}
			counts[interest]++
		}

		totalIntent += a.DetectIntent(msg.Content)
		userTurns++
	}

	// Descending by count; equal counts keep first-seen order.
	top := make([]string, len(seen))
	copy(top, seen)
	for i := 1; i < len(top); i++ {
		for j := i; j > 0 && counts[top[j]] > counts[top[j-1]]; j-- {
			top[j], top[j-1] = top[j-1], top[j]
		}
	}
	if len(top) > maxTopInterests {
		top = top[:maxTopInterests]
	}

	avgIntent := 0.0
	if userTurns > 0 {
		avgIntent = math.Round(totalIntent/float64(userTurns)*100) / 100
	}

	return domain.UserProfile{
		TopInterests:   top,
		AllInterests:   counts,
		PurchaseIntent: avgIntent,
		Engagement:     a.engagement(userTurns),
	}
}

func (a *BehaviorAnalyzer) engagement(userTurns int) domain.EngagementLevel {
	switch {
	case userTurns > a.highEngagementTurns:
		return domain.EngagementHigh
	case userTurns > a.mediumEngagementTurns:
		return domain.EngagementMedium
	default:
		return domain.EngagementLow
	}
}
