package cli

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// stubRetrieval implements driving.RetrievalService for command tests.
type stubRetrieval struct {
	results []domain.RetrievalResult
	answer  string
	initErr error
	askErr  error
}

func (s *stubRetrieval) Initialize(_ context.Context, _ bool) error { return s.initErr }

func (s *stubRetrieval) Rebuild(_ context.Context) error { return s.initErr }

func (s *stubRetrieval) Retrieve(_ context.Context, _ string, topK int) ([]domain.RetrievalResult, error) {
	if topK > 0 && topK < len(s.results) {
		return s.results[:topK], nil
	}
	return s.results, nil
}

func (s *stubRetrieval) ContextForQuery(_ context.Context, _ string, _ int) string { return "" }

func (s *stubRetrieval) Ask(_ context.Context, _ string, _ domain.ResponseMode) (string, error) {
	if s.askErr != nil {
		return "", s.askErr
	}
	return s.answer, nil
}

func (s *stubRetrieval) Len() int { return len(s.results) }

// stubRecommend implements driving.RecommendationService.
type stubRecommend struct {
	profile domain.UserProfile
	recs    []domain.ScoredRecommendation
	display bool
}

func (s *stubRecommend) AnalyzeHistory(_ []domain.ChatMessage) domain.UserProfile {
	return s.profile
}

func (s *stubRecommend) Recommend(
	_ context.Context, _ domain.UserProfile, _ int,
) ([]domain.ScoredRecommendation, error) {
	return s.recs, nil
}

func (s *stubRecommend) ShouldDisplay(_ domain.UserProfile, _ int) bool { return s.display }

// setupTestServices installs stub services and returns a cleanup that
// restores the previous ones.
func setupTestServices(retrieval *stubRetrieval, recommend *stubRecommend) func() {
	prevRetrieval := retrievalService
	prevRecommend := recommendService
	prevSource := documentSource

	retrievalService = retrieval
	recommendService = recommend
	documentSource = nil

	return func() {
		retrievalService = prevRetrieval
		recommendService = prevRecommend
		documentSource = prevSource
	}
}
