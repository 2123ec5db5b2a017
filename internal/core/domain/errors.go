package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// Build-time failures are loud: the system must not silently serve a
// wrong or empty knowledge base. Query-time failures are quiet: callers
// degrade to empty results so a conversation can continue ungrounded.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates invalid settings (chunk overlap not
	// smaller than chunk size, missing ranker weights). Fatal at startup.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrEmbeddingProvider indicates the embedding provider failed.
	// Propagated during index build, degraded to empty at query time.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrIndexNotFound indicates no persisted index exists at the
	// requested path. Callers fall back to a rebuild from source.
	ErrIndexNotFound = errors.New("vector index not found")

	// ErrIndexCorrupt indicates the persisted index artifacts could not
	// be decoded or disagree with each other.
	ErrIndexCorrupt = errors.New("vector index corrupt")

	// ErrDocumentDecode indicates a single document could not be
	// decoded. Logged and skipped per document, never aborts a build.
	ErrDocumentDecode = errors.New("document decode failed")

	// ErrLLMUnavailable indicates no LLM collaborator is configured.
	// Grounded question answering is disabled without one.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// configured. The retrieval engine cannot build or query without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
