package driving

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// RetrievalService turns a document base into a queryable vector index
// and answers top-k nearest-neighbour queries.
type RetrievalService interface {
	// Initialize restores a persisted index if one exists, otherwise
	// builds from source documents and persists the result. When
	// forceRebuild is true the persisted index is ignored. A document
	// base with no documents leaves an empty index and is not an error.
	Initialize(ctx context.Context, forceRebuild bool) error

	// Rebuild always builds a fresh index from source documents,
	// persists it, and atomically swaps it in.
	Rebuild(ctx context.Context) error

	// Retrieve returns at most topK chunks by ascending distance.
	// topK <= 0 selects the configured default. Query-time failures
	// degrade to an empty result set.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)

	// ContextForQuery formats the top results into a single grounding
	// string for a downstream prompt. It never fails; any internal
	// error degrades to an empty string.
	ContextForQuery(ctx context.Context, query string, topK int) string

	// Ask answers a question through the LLM collaborator, grounded on
	// the retrieved context.
	Ask(ctx context.Context, question string, mode domain.ResponseMode) (string, error)

	// Len returns the number of indexed chunks.
	Len() int
}
