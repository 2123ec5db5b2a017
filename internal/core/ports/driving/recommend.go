package driving

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// RecommendationService converts a conversation into an interest
// profile and ranks the product catalog against it.
type RecommendationService interface {
	// AnalyzeHistory recomputes a user profile from the full visible
	// conversation. Only user-authored turns contribute.
	AnalyzeHistory(history []domain.ChatMessage) domain.UserProfile

	// Recommend returns up to limit catalog items ranked for the
	// profile. limit <= 0 selects the configured maximum. A profile
	// with no top interests yields the first items in catalog order.
	Recommend(ctx context.Context, profile domain.UserProfile, limit int) ([]domain.ScoredRecommendation, error)

	// ShouldDisplay gates how often recommendations are surfaced.
	ShouldDisplay(profile domain.UserProfile, turnsSinceLastDisplay int) bool
}
