package driven

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// LLMService produces chat completions. This is the single capability
// the core needs from any LLM provider; request and response shapes
// beyond this are the adapter's business.
//
// This is an optional service - when nil, grounded question answering
// is disabled but retrieval and recommendations still work.
type LLMService interface {
	// Generate produces a completion for the given conversation.
	Generate(ctx context.Context, messages []domain.ChatMessage, opts GenerateOptions) (string, error)
}

// GenerateOptions configures completion behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
