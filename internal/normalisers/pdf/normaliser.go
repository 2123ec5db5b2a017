// Package pdf provides a normaliser for PDF documents.
//
// Text extraction shells out to pdftotext (poppler-utils). The command
// is injected behind a small interface so tests run without the binary.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser extracts text from PDF documents via pdftotext.
type Normaliser struct {
	runner CommandRunner
}

// New creates a new PDF normaliser using the system pdftotext binary.
func New() *Normaliser {
	return &Normaliser{runner: execRunner{}}
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner CommandRunner) *Normaliser {
	return &Normaliser{runner: runner}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise writes the raw bytes to a temp file and extracts text with
// pdftotext. Any failure wraps domain.ErrDocumentDecode so the build
// pipeline logs and skips the document instead of aborting.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	tmp, err := os.CreateTemp("", "shopsage-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp file for %s: %v", domain.ErrDocumentDecode, raw.URI, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw.Content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("%w: writing temp file for %s: %v", domain.ErrDocumentDecode, raw.URI, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing temp file for %s: %v", domain.ErrDocumentDecode, raw.URI, err)
	}

	// "-" sends extracted text to stdout.
	output, err := n.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDocumentDecode, InstallInstructions())
		}
		return nil, fmt.Errorf("%w: pdftotext failed for %s: %v", domain.ErrDocumentDecode, raw.URI, err)
	}

	content := strings.TrimSpace(string(output))
	if content == "" {
		return nil, fmt.Errorf("%w: no text extracted from %s", domain.ErrDocumentDecode, raw.URI)
	}

	return &domain.Document{
		ID:      uuid.New().String(),
		Source:  filepath.Base(raw.URI),
		Content: content,
	}, nil
}

// InstallInstructions describes how to install pdftotext.
func InstallInstructions() string {
	return "pdftotext is required for PDF documents.\n" +
		"  macOS:  brew install poppler\n" +
		"  Debian: apt install poppler-utils"
}
