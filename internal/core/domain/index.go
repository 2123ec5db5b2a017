package domain

// IndexRecord pairs a chunk with its embedding vector. The vector index
// owns one ordered sequence of records, so the vector/metadata parity
// invariant is enforced by the type rather than by convention.
type IndexRecord struct {
	// Vector is the chunk's embedding. All records in one index share
	// the same dimension, fixed at build time.
	Vector []float32

	// Chunk is the indexed passage and its attribution metadata.
	Chunk Chunk
}
