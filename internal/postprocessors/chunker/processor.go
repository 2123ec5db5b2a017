// Package chunker provides a fixed-size sliding-window text chunker.
package chunker

import (
	"fmt"
	"strings"

	"github.com/ankushsurana/shopsage/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// Processor splits document content into fixed-size overlapping windows.
// Window i spans [i*(size-overlap), i*(size-overlap)+size) in the
// original text; offsets are always computed against the original text,
// so dropping an empty window never shifts later windows.
type Processor struct {
	chunkSize int
	overlap   int
}

// New creates a chunker with the given window size and overlap, both in
// characters. The overlap must be non-negative and strictly smaller
// than the size: an overlap at or above the size would never advance
// the window, so it is rejected as a configuration error rather than
// executed.
func New(size, overlap int) (*Processor, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfiguration, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be non-negative, got %d", domain.ErrConfiguration, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrConfiguration, overlap, size)
	}
	return &Processor{chunkSize: size, overlap: overlap}, nil
}

// ChunkSize returns the configured window size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured window overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Chunk splits text into trimmed, non-empty windows. Windows that are
// empty or whitespace-only are dropped without affecting the offsets of
// subsequent windows.
func (p *Processor) Chunk(text string) []string {
	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}

	step := p.chunkSize - p.overlap
	chunks := make([]string, 0, total/step+1)

	for start := 0; start < total; start += step {
		end := start + p.chunkSize
		if end > total {
			end = total
		}

		window := strings.TrimSpace(string(runes[start:end]))
		if window != "" {
			chunks = append(chunks, window)
		}
	}

	return chunks
}

// ChunkDocument splits a document's content and attaches per-source
// metadata. Chunk IDs restart at 0 for every document.
func (p *Processor) ChunkDocument(doc *domain.Document) []domain.Chunk {
	texts := p.Chunk(doc.Content)
	if len(texts) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			Content: text,
			Source:  doc.Source,
			ChunkID: i,
		}
	}
	return chunks
}
