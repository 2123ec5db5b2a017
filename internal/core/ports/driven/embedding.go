package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The retrieval engine cannot build or query an index without one.
//
// Implementations must be deterministic for identical input text and
// model configuration, though not necessarily bit-identical across
// provider versions.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// The result is parallel to the input: one vector per text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This is fixed at the first index build.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a build.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
