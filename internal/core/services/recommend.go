package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driving"
	"github.com/ankushsurana/shopsage/internal/logger"
)

// Ensure RecommendationService implements the interface.
var _ driving.RecommendationService = (*RecommendationService)(nil)

// RecommendationService ranks the product catalog against interest
// profiles extracted from conversation history. The catalog is loaded
// once at construction and read-only afterwards.
type RecommendationService struct {
	analyzer *BehaviorAnalyzer
	catalog  []domain.CatalogItem
	settings domain.RankerSettings
}

// NewRecommendationService creates a recommendation service over the
// given catalog. An empty catalog is valid and yields empty
// recommendation lists.
func NewRecommendationService(
	catalog []domain.CatalogItem, settings domain.RankerSettings,
) *RecommendationService {
	return &RecommendationService{
		analyzer: NewBehaviorAnalyzer(settings),
		catalog:  catalog,
		settings: settings,
	}
}

// AnalyzeHistory recomputes a user profile from the conversation.
func (s *RecommendationService) AnalyzeHistory(history []domain.ChatMessage) domain.UserProfile {
	return s.analyzer.Analyze(history)
}

// Score computes the relevance of one catalog item for a profile:
// interest occurrence counts weighted by category match, plus a
// normalised rating term and a stock bonus, all amplified by purchase
// intent. The result is non-negative and unbounded.
func (s *RecommendationService) Score(item domain.CatalogItem, profile domain.UserProfile) float64 {
	category := strings.ToLower(item.Category)

	score := 0.0
	for interest, count := range profile.AllInterests {
		if strings.Contains(category, interest) {
			score += float64(count) * s.settings.CategoryWeight
		}
	}

	score += item.Rating / 5.0 * s.settings.RatingWeight

	if item.InStock() {
		score += s.settings.StockWeight
	}

	return score * (1 + profile.PurchaseIntent)
}

// Recommend returns up to limit catalog items ranked for the profile.
// Items whose category matches no top interest are excluded; a profile
// with no top interests falls back to the first items in catalog order,
// unscored.
func (s *RecommendationService) Recommend(
	_ context.Context, profile domain.UserProfile, limit int,
) ([]domain.ScoredRecommendation, error) {
	if len(s.catalog) == 0 {
		logger.Debug("Catalog empty, no recommendations")
		return []domain.ScoredRecommendation{}, nil
	}

	if limit <= 0 {
		limit = s.settings.MaxRecommendations
	}

	if len(profile.TopInterests) == 0 {
		logger.Debug("No interests detected, falling back to catalog order")
		n := min(limit, len(s.catalog))
		fallback := make([]domain.ScoredRecommendation, n)
		for i, item := range s.catalog[:n] {
			fallback[i] = domain.ScoredRecommendation{CatalogItem: item}
		}
		return fallback, nil
	}

	var recommended []domain.ScoredRecommendation
	for _, item := range s.catalog {
		category := strings.ToLower(item.Category)

		for _, interest := range profile.TopInterests {
			if strings.Contains(category, interest) {
				recommended = append(recommended, domain.ScoredRecommendation{
					CatalogItem:    item,
					RelevanceScore: s.Score(item, profile),
				})
				break
			}
		}
	}

	// Descending by score, then rating; full ties keep catalog order.
	sort.SliceStable(recommended, func(i, j int) bool {
		if recommended[i].RelevanceScore != recommended[j].RelevanceScore {
			return recommended[i].RelevanceScore > recommended[j].RelevanceScore
		}
		return recommended[i].Rating > recommended[j].Rating
	})

	if len(recommended) > limit {
		recommended = recommended[:limit]
	}
	logger.Debug("Ranked %d recommendations for interests %v", len(recommended), profile.TopInterests)
	return recommended, nil
}

// ShouldDisplay gates how often recommendations surface: high-intent
// users see them after a short interval, highly engaged users after a
// longer one, everyone else not at all.
func (s *RecommendationService) ShouldDisplay(
	profile domain.UserProfile, turnsSinceLastDisplay int,
) bool {
	if profile.PurchaseIntent > s.settings.HighIntentThreshold &&
		turnsSinceLastDisplay >= s.settings.MinTurnsBetween {
		return true
	}
	if profile.Engagement == domain.EngagementHigh &&
		turnsSinceLastDisplay >= s.settings.EngagedInterval {
		return true
	}
	return false
}
