package domain

import "fmt"

// Settings is the explicit configuration for the retrieval and
// recommendation engines. Every weight and threshold lives here and is
// passed into component constructors; no component reads shared global
// state.
type Settings struct {
	Chunking  ChunkingSettings  `toml:"chunking"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	Embedding ProviderSettings  `toml:"embedding"`
	LLM       LLMSettings       `toml:"llm"`
	Ranker    RankerSettings    `toml:"ranker"`
}

// ChunkingSettings controls the sliding-window chunker.
type ChunkingSettings struct {
	// Size is the window length in characters.
	Size int `toml:"size"`

	// Overlap is the number of characters consecutive windows share.
	// Must be non-negative and strictly less than Size.
	Overlap int `toml:"overlap"`
}

// RetrievalSettings controls the retrieval engine.
type RetrievalSettings struct {
	// DataDir is the directory holding knowledge-base documents.
	DataDir string `toml:"data_dir"`

	// IndexPath is the logical path prefix for the persisted index
	// artifacts (<path>.vec and <path>.db).
	IndexPath string `toml:"index_path"`

	// TopK is the default number of chunks to retrieve per query.
	TopK int `toml:"top_k"`
}

// ProviderSettings configures an HTTP embedding provider.
type ProviderSettings struct {
	// Provider selects the adapter: "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default API base URL.
	BaseURL string `toml:"base_url"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// APIKey authenticates hosted providers. Unused by ollama.
	APIKey string `toml:"api_key"`

	// Dimensions is the embedding vector size. Zero means the
	// adapter's model default.
	Dimensions int `toml:"dimensions"`
}

// LLMSettings configures the optional LLM collaborator.
type LLMSettings struct {
	// BaseURL is the OpenAI-compatible API base URL. Groq and OpenAI
	// both speak this protocol.
	BaseURL string `toml:"base_url"`

	// Model is the chat model name.
	Model string `toml:"model"`

	// APIKey authenticates the provider.
	APIKey string `toml:"api_key"`

	// Temperature controls sampling randomness.
	Temperature float64 `toml:"temperature"`

	// ConciseMaxTokens caps completions in concise mode.
	ConciseMaxTokens int `toml:"concise_max_tokens"`

	// DetailedMaxTokens caps completions in detailed mode.
	DetailedMaxTokens int `toml:"detailed_max_tokens"`
}

// RankerSettings holds every weight and threshold used by the behaviour
// analyzer and the recommendation ranker.
type RankerSettings struct {
	// CatalogPath is the JSON product catalog file.
	CatalogPath string `toml:"catalog_path"`

	// CategoryWeight multiplies each interest occurrence count when the
	// interest matches an item's category.
	CategoryWeight float64 `toml:"category_weight"`

	// RatingWeight multiplies the item's normalised rating (rating/5).
	RatingWeight float64 `toml:"rating_weight"`

	// StockWeight is added when an item is in stock.
	StockWeight float64 `toml:"stock_weight"`

	// IntentDivisor divides the per-message purchase-signal match count
	// before clamping to 1.0.
	IntentDivisor float64 `toml:"intent_divisor"`

	// HighIntentThreshold is the purchase-intent level above which
	// recommendations may be shown at the shorter interval.
	HighIntentThreshold float64 `toml:"high_intent_threshold"`

	// MinTurnsBetween is the minimum number of turns between displays
	// for high-intent users.
	MinTurnsBetween int `toml:"min_turns_between"`

	// EngagedInterval is the minimum number of turns between displays
	// for highly engaged users without high intent.
	EngagedInterval int `toml:"engaged_interval"`

	// HighEngagementTurns is the user-turn count above which engagement
	// classifies as high.
	HighEngagementTurns int `toml:"high_engagement_turns"`

	// MediumEngagementTurns is the user-turn count above which
	// engagement classifies as medium.
	MediumEngagementTurns int `toml:"medium_engagement_turns"`

	// MaxRecommendations caps the ranked list.
	MaxRecommendations int `toml:"max_recommendations"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Chunking: ChunkingSettings{
			Size:    500,
			Overlap: 50,
		},
		Retrieval: RetrievalSettings{
			DataDir:   "data",
			IndexPath: "data/vector_store",
			TopK:      3,
		},
		Embedding: ProviderSettings{
			Provider: "ollama",
		},
		LLM: LLMSettings{
			Temperature:       0.7,
			ConciseMaxTokens:  150,
			DetailedMaxTokens: 1000,
		},
		Ranker: RankerSettings{
			CatalogPath:           "data/product_catalog.json",
			CategoryWeight:        2.0,
			RatingWeight:          1.5,
			StockWeight:           0.5,
			IntentDivisor:         3,
			HighIntentThreshold:   0.6,
			MinTurnsBetween:       3,
			EngagedInterval:       5,
			HighEngagementTurns:   10,
			MediumEngagementTurns: 5,
			MaxRecommendations:    5,
		},
	}
}

// Validate checks the settings for configuration errors. Violations are
// fatal and surfaced at startup, before any component runs.
func (s Settings) Validate() error {
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, s.Chunking.Size)
	}
	if s.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d", ErrConfiguration, s.Chunking.Overlap)
	}
	if s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			ErrConfiguration, s.Chunking.Overlap, s.Chunking.Size)
	}
	if s.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrConfiguration, s.Retrieval.TopK)
	}
	if s.Ranker.CategoryWeight <= 0 || s.Ranker.RatingWeight <= 0 || s.Ranker.StockWeight <= 0 {
		return fmt.Errorf("%w: ranker weights must be positive", ErrConfiguration)
	}
	if s.Ranker.IntentDivisor <= 0 {
		return fmt.Errorf("%w: intent divisor must be positive, got %g", ErrConfiguration, s.Ranker.IntentDivisor)
	}
	if s.Ranker.HighIntentThreshold <= 0 || s.Ranker.HighIntentThreshold >= 1 {
		return fmt.Errorf("%w: high intent threshold must be in (0, 1), got %g",
			ErrConfiguration, s.Ranker.HighIntentThreshold)
	}
	if s.Ranker.MediumEngagementTurns >= s.Ranker.HighEngagementTurns {
		return fmt.Errorf("%w: medium engagement turns %d must be below high engagement turns %d",
			ErrConfiguration, s.Ranker.MediumEngagementTurns, s.Ranker.HighEngagementTurns)
	}
	if s.Ranker.MaxRecommendations <= 0 {
		return fmt.Errorf("%w: max recommendations must be positive, got %d",
			ErrConfiguration, s.Ranker.MaxRecommendations)
	}
	return nil
}
