package driven

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// VectorIndex answers exact nearest-neighbour queries over a fixed set
// of records. An index is populated once at construction and read-only
// afterwards; rebuilding means constructing a new index and swapping
// the reference.
type VectorIndex interface {
	// Search returns at most k records by ascending squared Euclidean
	// distance to the query vector. An empty index returns an empty
	// slice without error.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error)

	// Len returns the number of records in the index.
	Len() int

	// Dimensions returns the vector dimension, or 0 for an empty index.
	Dimensions() int

	// Records returns the ordered record sequence for persistence.
	// Callers must not mutate the result.
	Records() []domain.IndexRecord
}

// IndexFactory constructs a fresh VectorIndex from a bulk record set.
// It fails if the records disagree on vector dimension.
type IndexFactory func(records []domain.IndexRecord) (VectorIndex, error)

// IndexStore persists a vector index's records and restores them in a
// later process. Save replaces any previously persisted state; Load
// returns domain.ErrIndexNotFound when no complete persisted index
// exists and domain.ErrIndexCorrupt when the artifacts cannot be
// decoded consistently.
type IndexStore interface {
	// Save writes the records durably.
	Save(ctx context.Context, records []domain.IndexRecord) error

	// Load reads back the full record sequence.
	Load(ctx context.Context) ([]domain.IndexRecord, error)
}
