// Package plaintext provides a normaliser for plain text documents.
package plaintext

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md", ".text"}
}

// Normalise converts raw bytes to a document with text content.
// The Source is the base filename, which chunk metadata carries for
// attribution in retrieval results.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrDocumentDecode, raw.URI)
	}

	return &domain.Document{
		ID:      uuid.New().String(),
		Source:  filepath.Base(raw.URI),
		Content: string(raw.Content),
	}, nil
}
