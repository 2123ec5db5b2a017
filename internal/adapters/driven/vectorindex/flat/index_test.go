package flat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

func rec(source string, id int, vec ...float32) domain.IndexRecord {
	return domain.IndexRecord{
		Vector: vec,
		Chunk:  domain.Chunk{Content: source, Source: source, ChunkID: id},
	}
}

func TestNew_Empty(t *testing.T) {
	idx, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, 0, idx.Dimensions())
}

func TestNew_FixesDimension(t *testing.T) {
	idx, err := New([]domain.IndexRecord{
		rec("a.txt", 0, 1, 0, 0),
		rec("a.txt", 1, 0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 3, idx.Dimensions())
}

func TestNew_MismatchedDimension(t *testing.T) {
	_, err := New([]domain.IndexRecord{
		rec("a.txt", 0, 1, 0),
		rec("a.txt", 1, 1, 0, 0),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSearch_AscendingDistance(t *testing.T) {
	idx, err := New([]domain.IndexRecord{
		rec("far.txt", 0, 10, 0),
		rec("near.txt", 0, 1, 0),
		rec("mid.txt", 0, 5, 0),
	})
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), []float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "near.txt", results[0].Chunk.Source)
	assert.Equal(t, "mid.txt", results[1].Chunk.Source)
	assert.Equal(t, "far.txt", results[2].Chunk.Source)

	assert.InDelta(t, 1.0, results[0].Distance, 1e-9)
	assert.InDelta(t, 25.0, results[1].Distance, 1e-9)
	assert.InDelta(t, 100.0, results[2].Distance, 1e-9)
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx, err := New(nil)
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), []float32{1, 2}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_KAboveLen(t *testing.T) {
	idx, err := New([]domain.IndexRecord{
		rec("a.txt", 0, 1, 0),
		rec("a.txt", 1, 0, 1),
	})
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), []float32{0, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_Deterministic(t *testing.T) {
	idx, err := New([]domain.IndexRecord{
		rec("a.txt", 0, 1, 1),
		rec("b.txt", 0, 2, 2),
		rec("c.txt", 0, 3, 3),
	})
	require.NoError(t, err)

	query := []float32{1.5, 1.5}
	first, err := idx.Search(context.Background(), query, 3)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := idx.Search(context.Background(), query, 3)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_TieKeepsBuildOrder(t *testing.T) {
	// Two records equidistant from the query: build order wins.
	idx, err := New([]domain.IndexRecord{
		rec("first.txt", 0, 1, 0),
		rec("second.txt", 0, -1, 0),
	})
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), []float32{0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first.txt", results[0].Chunk.Source)
	assert.Equal(t, "second.txt", results[1].Chunk.Source)
}

func TestSearch_DimensionMismatch(t *testing.T) {
	idx, err := New([]domain.IndexRecord{rec("a.txt", 0, 1, 2, 3)})
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1, 2}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
