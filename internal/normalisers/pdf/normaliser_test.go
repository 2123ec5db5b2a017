package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func TestSupportedExtensions(t *testing.T) {
	n := New()
	exts := n.SupportedExtensions()
	require.Len(t, exts, 1)
	assert.Equal(t, ".pdf", exts[0])
}

func TestNormalise_NilDocument(t *testing.T) {
	n := New()

	doc, err := n.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, doc)
}

func TestNormalise_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Shipping takes 3-5 business days.\n")}
	n := NewWithRunner(runner)

	doc, err := n.Normalise(context.Background(), &domain.RawDocument{
		URI:     "/kb/shipping.pdf",
		Ext:     ".pdf",
		Content: []byte("%PDF-1.4 fake"),
	})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "shipping.pdf", doc.Source)
	assert.Equal(t, "Shipping takes 3-5 business days.", doc.Content)
	assert.NotEmpty(t, doc.ID)
}

func TestNormalise_RunnerFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exec: pdftotext: not found")}
	n := NewWithRunner(runner)

	doc, err := n.Normalise(context.Background(), &domain.RawDocument{
		URI:     "/kb/shipping.pdf",
		Content: []byte("%PDF-1.4 fake"),
	})
	assert.ErrorIs(t, err, domain.ErrDocumentDecode)
	assert.Nil(t, doc)
}

func TestNormalise_EmptyExtraction(t *testing.T) {
	runner := &mockRunner{output: []byte("   \n\t ")}
	n := NewWithRunner(runner)

	doc, err := n.Normalise(context.Background(), &domain.RawDocument{
		URI:     "/kb/scanned.pdf",
		Content: []byte("%PDF-1.4 fake"),
	})
	assert.ErrorIs(t, err, domain.ErrDocumentDecode)
	assert.Nil(t, doc)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}
