package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankushsurana/shopsage/internal/adapters/driven/vectorindex/flat"
	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
	"github.com/ankushsurana/shopsage/internal/postprocessors/chunker"
)

// --- Mock implementations ---

// mockSource implements driven.DocumentSource for testing.
type mockSource struct {
	docs    []domain.RawDocument
	listErr error
}

func (m *mockSource) List(_ context.Context) ([]domain.RawDocument, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.docs, nil
}

func (m *mockSource) Watch(_ context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{})
	close(ch)
	return ch, nil
}

func (m *mockSource) Close() error { return nil }

// mockNormaliser implements driven.Normaliser for .txt documents.
type mockNormaliser struct {
	failURIs map[string]bool
}

func (m *mockNormaliser) SupportedExtensions() []string { return []string{".txt"} }

func (m *mockNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if m.failURIs[raw.URI] {
		return nil, fmt.Errorf("normalise: %w: broken document", domain.ErrDocumentDecode)
	}
	return &domain.Document{
		ID:      raw.URI,
		Source:  raw.URI,
		Content: string(raw.Content),
	}, nil
}

// mockEmbedder implements driven.EmbeddingService. Each text embeds to
// a 2-dim vector encoding its length, so distances are deterministic.
type mockEmbedder struct {
	embedErr error
	calls    int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.calls++
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i], _ = m.Embed(ctx, t)
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockIndexStore implements driven.IndexStore in memory.
type mockIndexStore struct {
	records []domain.IndexRecord
	saved   bool
	loadErr error
	saveErr error
}

func (m *mockIndexStore) Save(_ context.Context, records []domain.IndexRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = records
	m.saved = true
	return nil
}

func (m *mockIndexStore) Load(_ context.Context) ([]domain.IndexRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.records, nil
}

// mockLLM implements driven.LLMService, echoing the last user message.
type mockLLM struct {
	lastMessages []domain.ChatMessage
	lastOpts     driven.GenerateOptions
	response     string
	generateErr  error
}

func (m *mockLLM) Generate(
	_ context.Context, messages []domain.ChatMessage, opts driven.GenerateOptions,
) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.lastMessages = messages
	m.lastOpts = opts
	return m.response, nil
}

// --- Helpers ---

func flatFactory(records []domain.IndexRecord) (driven.VectorIndex, error) {
	return flat.New(records)
}

func newTestRetrieval(
	t *testing.T, source *mockSource, store *mockIndexStore, llm driven.LLMService,
) *RetrievalService {
	t.Helper()

	proc, err := chunker.New(500, 50)
	require.NoError(t, err)

	settings := domain.DefaultSettings()
	return NewRetrievalService(
		source,
		[]driven.Normaliser{&mockNormaliser{}},
		proc,
		&mockEmbedder{},
		flatFactory,
		store,
		llm,
		settings,
	)
}

func rawTxt(uri, content string) domain.RawDocument {
	return domain.RawDocument{URI: uri, Ext: ".txt", Content: []byte(content)}
}

// --- Tests ---

func TestInitialize_BuildsWhenNotPersisted(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "Returns are accepted within 30 days."),
		rawTxt("shipping.txt", "Standard shipping takes 5 business days."),
	}}
	store := &mockIndexStore{loadErr: domain.ErrIndexNotFound}

	s := newTestRetrieval(t, source, store, nil)
	require.NoError(t, s.Initialize(context.Background(), false))

	assert.Equal(t, 2, s.Len())
	assert.True(t, store.saved)
	assert.Len(t, store.records, 2)
}

func TestInitialize_RestoresPersistedIndex(t *testing.T) {
	store := &mockIndexStore{records: []domain.IndexRecord{
		{Vector: []float32{1, 0}, Chunk: domain.Chunk{Content: "stored", Source: "faq.txt"}},
	}}
	// A list failure would make any build attempt loud.
	source := &mockSource{listErr: errors.New("must not list")}

	s := newTestRetrieval(t, source, store, nil)
	require.NoError(t, s.Initialize(context.Background(), false))

	assert.Equal(t, 1, s.Len())
}

func TestInitialize_ForceRebuildSkipsRestore(t *testing.T) {
	store := &mockIndexStore{records: []domain.IndexRecord{
		{Vector: []float32{1, 0}, Chunk: domain.Chunk{Content: "stale", Source: "old.txt"}},
	}}
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "fresh content"),
	}}

	s := newTestRetrieval(t, source, store, nil)
	require.NoError(t, s.Initialize(context.Background(), true))

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "fresh content", store.records[0].Chunk.Content)
}

func TestInitialize_CorruptIndexFallsBackToRebuild(t *testing.T) {
	store := &mockIndexStore{loadErr: fmt.Errorf("decoding: %w", domain.ErrIndexCorrupt)}
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "rebuilt content"),
	}}

	s := newTestRetrieval(t, source, store, nil)
	require.NoError(t, s.Initialize(context.Background(), false))

	assert.Equal(t, 1, s.Len())
}

func TestRebuild_EmptySourceYieldsEmptyIndex(t *testing.T) {
	store := &mockIndexStore{}
	s := newTestRetrieval(t, &mockSource{}, store, nil)

	require.NoError(t, s.Rebuild(context.Background()))

	assert.Equal(t, 0, s.Len())
	assert.True(t, store.saved)
	assert.Empty(t, store.records)
}

func TestRebuild_SkipsUndecodableDocuments(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("good.txt", "readable content"),
		rawTxt("bad.txt", "unreadable"),
		{URI: "image.png", Ext: ".png", Content: []byte{0xff}},
	}}
	store := &mockIndexStore{}

	proc, err := chunker.New(500, 50)
	require.NoError(t, err)

	s := NewRetrievalService(
		source,
		[]driven.Normaliser{&mockNormaliser{failURIs: map[string]bool{"bad.txt": true}}},
		proc,
		&mockEmbedder{},
		flatFactory,
		store,
		nil,
		domain.DefaultSettings(),
	)

	require.NoError(t, s.Rebuild(context.Background()))
	assert.Equal(t, 1, s.Len())
}

func TestRebuild_KeepsOldIndexOnFailure(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "original content"),
	}}
	store := &mockIndexStore{}

	s := newTestRetrieval(t, source, store, nil)
	require.NoError(t, s.Rebuild(context.Background()))
	require.Equal(t, 1, s.Len())

	source.listErr = errors.New("directory vanished")
	require.Error(t, s.Rebuild(context.Background()))

	// The earlier index is still serving queries.
	assert.Equal(t, 1, s.Len())
}

func TestRetrieve(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("a.txt", "short"),
		rawTxt("b.txt", "a slightly longer chunk of text"),
	}}
	s := newTestRetrieval(t, source, &mockIndexStore{}, nil)
	require.NoError(t, s.Rebuild(context.Background()))

	// Query length matches "short", so a.txt must rank first.
	results, err := s.Retrieve(context.Background(), "shrtq", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a.txt", results[0].Chunk.Source)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
}

func TestRetrieve_EmptyQueryAndEmptyIndex(t *testing.T) {
	s := newTestRetrieval(t, &mockSource{}, &mockIndexStore{}, nil)

	results, err := s.Retrieve(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Uninitialised index degrades quietly too.
	results, err = s.Retrieve(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_EmbeddingFailureDegrades(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{rawTxt("a.txt", "content")}}
	store := &mockIndexStore{}

	proc, err := chunker.New(500, 50)
	require.NoError(t, err)

	embedder := &mockEmbedder{}
	s := NewRetrievalService(
		source, []driven.Normaliser{&mockNormaliser{}}, proc,
		embedder, flatFactory, store, nil, domain.DefaultSettings(),
	)
	require.NoError(t, s.Rebuild(context.Background()))

	embedder.embedErr = fmt.Errorf("%w: provider down", domain.ErrEmbeddingProvider)

	results, err := s.Retrieve(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestContextForQuery(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "Returns are accepted within 30 days."),
		rawTxt("shipping.txt", "Standard shipping takes 5 business days."),
	}}
	s := newTestRetrieval(t, source, &mockIndexStore{}, nil)
	require.NoError(t, s.Rebuild(context.Background()))

	got := s.ContextForQuery(context.Background(), "returns", 2)

	require.NotEmpty(t, got)
	assert.True(t, strings.HasPrefix(got, "[Source: "))
	assert.Contains(t, got, "\n\n---\n\n")
	assert.Contains(t, got, "[Source: faq.txt]\nReturns are accepted within 30 days.")
}

func TestContextForQuery_EmptyIndex(t *testing.T) {
	s := newTestRetrieval(t, &mockSource{}, &mockIndexStore{}, nil)
	assert.Equal(t, "", s.ContextForQuery(context.Background(), "anything", 3))
}

func TestAsk(t *testing.T) {
	source := &mockSource{docs: []domain.RawDocument{
		rawTxt("faq.txt", "Returns are accepted within 30 days."),
	}}
	llm := &mockLLM{response: "Returns take 30 days."}

	s := newTestRetrieval(t, source, &mockIndexStore{}, llm)
	require.NoError(t, s.Rebuild(context.Background()))

	answer, err := s.Ask(context.Background(), "How long do returns take?", domain.ResponseModeConcise)
	require.NoError(t, err)
	assert.Equal(t, "Returns take 30 days.", answer)

	require.Len(t, llm.lastMessages, 2)
	assert.Equal(t, domain.RoleSystem, llm.lastMessages[0].Role)
	assert.Contains(t, llm.lastMessages[0].Content, "CONCISE")
	assert.Contains(t, llm.lastMessages[1].Content, "Context Information:")
	assert.Contains(t, llm.lastMessages[1].Content, "User Question: How long do returns take?")
	assert.Equal(t, 150, llm.lastOpts.MaxTokens)
}

func TestAsk_DetailedMode(t *testing.T) {
	llm := &mockLLM{response: "A detailed answer."}
	s := newTestRetrieval(t, &mockSource{}, &mockIndexStore{}, llm)

	_, err := s.Ask(context.Background(), "tell me everything", domain.ResponseModeDetailed)
	require.NoError(t, err)

	assert.Contains(t, llm.lastMessages[0].Content, "DETAILED")
	// Empty index: the question goes through ungrounded.
	assert.Equal(t, "tell me everything", llm.lastMessages[1].Content)
	assert.Equal(t, 1000, llm.lastOpts.MaxTokens)
}

func TestAsk_NoLLM(t *testing.T) {
	s := newTestRetrieval(t, &mockSource{}, &mockIndexStore{}, nil)

	_, err := s.Ask(context.Background(), "anything", domain.ResponseModeConcise)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
