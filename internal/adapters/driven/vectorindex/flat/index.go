// Package flat provides an exact nearest-neighbour vector index.
//
// The index is a flat scan over every stored vector by squared
// Euclidean distance. At knowledge-base scale this is faster to build
// and simpler to persist than an approximate structure, and results
// are exact and deterministic.
package flat

import (
	"context"
	"fmt"
	"sort"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an immutable flat vector index. It is populated once by New
// and read-only afterwards, so concurrent readers need no locking.
type Index struct {
	records    []domain.IndexRecord
	dimensions int
}

// New constructs an index from a bulk record set. All vectors must
// share one dimension; the first record fixes it. An empty record set
// yields a valid empty index.
func New(records []domain.IndexRecord) (*Index, error) {
	idx := &Index{}
	if len(records) == 0 {
		return idx, nil
	}

	dim := len(records[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("%w: record 0 has an empty vector", domain.ErrInvalidInput)
	}
	for i, r := range records {
		if len(r.Vector) != dim {
			return nil, fmt.Errorf("%w: record %d has dimension %d, expected %d",
				domain.ErrInvalidInput, i, len(r.Vector), dim)
		}
	}

	idx.records = records
	idx.dimensions = dim
	return idx, nil
}

// Search returns at most k records by ascending squared Euclidean
// distance to the query vector.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if len(idx.records) == 0 || k <= 0 {
		return []domain.RetrievalResult{}, nil
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrInvalidInput, len(query), idx.dimensions)
	}

	results := make([]domain.RetrievalResult, len(idx.records))
	for i, r := range idx.records {
		results[i] = domain.RetrievalResult{
			Chunk:    r.Chunk,
			Distance: squaredL2(query, r.Vector),
		}
	}

	// Stable so equidistant chunks keep build order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Dimensions returns the vector dimension, or 0 for an empty index.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// Records returns the ordered record sequence for persistence.
func (idx *Index) Records() []domain.IndexRecord {
	return idx.records
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length. Accumulates in float64 to limit rounding drift.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
