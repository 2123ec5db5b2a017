// Package domain defines the core business entities for Shopsage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A loaded knowledge-base document
//   - Chunk: An indexed passage of a document
//   - RetrievalResult: A nearest-neighbour hit against the vector index
//   - UserProfile: Interest and intent signals derived from a conversation
//   - CatalogItem: A product in the static catalog
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
