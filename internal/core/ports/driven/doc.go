// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
//
// These are the capabilities the core consumes: embedding generation,
// LLM completion, vector index storage, document loading, catalog
// loading, and configuration. Services depend on these interfaces;
// adapters under internal/adapters implement them.
package driven
