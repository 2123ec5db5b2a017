package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero chunk size", func(s *Settings) { s.Chunking.Size = 0 }},
		{"negative overlap", func(s *Settings) { s.Chunking.Overlap = -1 }},
		{"overlap equals size", func(s *Settings) { s.Chunking.Overlap = s.Chunking.Size }},
		{"overlap exceeds size", func(s *Settings) { s.Chunking.Overlap = s.Chunking.Size + 1 }},
		{"zero top_k", func(s *Settings) { s.Retrieval.TopK = 0 }},
		{"zero category weight", func(s *Settings) { s.Ranker.CategoryWeight = 0 }},
		{"zero intent divisor", func(s *Settings) { s.Ranker.IntentDivisor = 0 }},
		{"threshold at one", func(s *Settings) { s.Ranker.HighIntentThreshold = 1 }},
		{"engagement bands inverted", func(s *Settings) { s.Ranker.MediumEngagementTurns = s.Ranker.HighEngagementTurns }},
		{"zero max recommendations", func(s *Settings) { s.Ranker.MaxRecommendations = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestCatalogItemInStock(t *testing.T) {
	assert.True(t, CatalogItem{Stock: StockInStock}.InStock())
	assert.False(t, CatalogItem{Stock: "out-of-stock"}.InStock())
	assert.False(t, CatalogItem{}.InStock())
}
