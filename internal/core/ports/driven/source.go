package driven

import (
	"context"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// DocumentSource lists raw knowledge-base documents. Entries the source
// cannot read are skipped, not fatal. A missing location yields an
// empty listing.
type DocumentSource interface {
	// List returns every readable entry in order. The returned slice
	// carries raw bytes; decoding is the normalisers' job.
	List(ctx context.Context) ([]domain.RawDocument, error)

	// Watch emits a signal whenever the underlying location changes.
	// Callers use it to trigger full rebuilds; there is no incremental
	// update path. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan struct{}, error)

	// Close releases resources.
	Close() error
}

// Normaliser decodes a raw document into text content.
// Each normaliser handles specific file extensions.
type Normaliser interface {
	// SupportedExtensions returns the lowercased extensions this
	// normaliser handles, including the dot (e.g. ".pdf").
	SupportedExtensions() []string

	// Normalise converts raw bytes into a Document with Content set.
	// A failure wraps domain.ErrDocumentDecode.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
