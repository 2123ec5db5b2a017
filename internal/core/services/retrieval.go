package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
	"github.com/ankushsurana/shopsage/internal/core/ports/driving"
	"github.com/ankushsurana/shopsage/internal/logger"
	"github.com/ankushsurana/shopsage/internal/postprocessors/chunker"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// System prompts for grounded answers. Both instruct the model to treat
// the retrieved context as its own knowledge rather than citing it.
const (
	conciseSystemPrompt = `You are a helpful e-commerce customer support assistant.
Provide SHORT, CONCISE, and ACCURATE answers. Keep responses under 2-3 sentences.
Answer naturally as if the information is your own knowledge.
Do NOT say "according to the knowledge base" or "based on the provided context".
Base your answers STRICTLY on the provided context but do not explicitly mention it.
Be clear, direct, and professional.`

	detailedSystemPrompt = `You are a knowledgeable e-commerce customer support assistant.
Provide DETAILED, ACCURATE, and CLEAR answers.
Answer naturally as if the information is your own knowledge.
Do NOT say "according to the knowledge base" or "based on the provided context".
Base your answers STRICTLY on the provided context but do not explicitly mention it.
Include relevant details and step-by-step instructions where applicable.
Be professional, friendly, and ensure the customer understands the information clearly.`
)

// RetrievalService builds and queries the knowledge-base vector index.
type RetrievalService struct {
	source      driven.DocumentSource
	normalisers map[string]driven.Normaliser
	chunker     *chunker.Processor
	embedder    driven.EmbeddingService
	newIndex    driven.IndexFactory
	store       driven.IndexStore
	llm         driven.LLMService

	topK              int
	llmTemperature    float64
	conciseMaxTokens  int
	detailedMaxTokens int

	mu    sync.RWMutex
	index driven.VectorIndex
}

// NewRetrievalService creates a new retrieval service. The llm
// parameter is optional (can be nil); without it Retrieve and
// ContextForQuery still work but Ask fails.
func NewRetrievalService(
	source driven.DocumentSource,
	normalisers []driven.Normaliser,
	chunkProcessor *chunker.Processor,
	embedder driven.EmbeddingService,
	newIndex driven.IndexFactory,
	store driven.IndexStore,
	llm driven.LLMService,
	settings domain.Settings,
) *RetrievalService {
	byExt := make(map[string]driven.Normaliser)
	for _, n := range normalisers {
		for _, ext := range n.SupportedExtensions() {
			byExt[ext] = n
		}
	}

	return &RetrievalService{
		source:            source,
		normalisers:       byExt,
		chunker:           chunkProcessor,
		embedder:          embedder,
		newIndex:          newIndex,
		store:             store,
		llm:               llm,
		topK:              settings.Retrieval.TopK,
		llmTemperature:    settings.LLM.Temperature,
		conciseMaxTokens:  settings.LLM.ConciseMaxTokens,
		detailedMaxTokens: settings.LLM.DetailedMaxTokens,
	}
}

// Initialize restores the persisted index when one exists, otherwise
// builds from source documents. forceRebuild skips the restore attempt.
// Missing or corrupt artifacts fall back to a rebuild; corruption is
// warned about so the operator knows the old artifacts were unusable.
func (s *RetrievalService) Initialize(ctx context.Context, forceRebuild bool) error {
	if !forceRebuild {
		records, err := s.store.Load(ctx)
		switch {
		case err == nil:
			index, ferr := s.newIndex(records)
			if ferr != nil {
				return fmt.Errorf("initialize: restoring index: %w", ferr)
			}
			s.swap(index)
			logger.Info("Restored index with %d chunks", index.Len())
			return nil

		case errors.Is(err, domain.ErrIndexNotFound):
			logger.Debug("No persisted index, building from documents")

		case errors.Is(err, domain.ErrIndexCorrupt):
			logger.Warn("Persisted index unusable, rebuilding: %v", err)

		default:
			return fmt.Errorf("initialize: %w", err)
		}
	}

	return s.Rebuild(ctx)
}

// Rebuild builds a fresh index from the document base, persists it, and
// swaps it in. Build failures are loud; the previous index stays in
// place when a rebuild fails.
func (s *RetrievalService) Rebuild(ctx context.Context) error {
	logger.Section("Index Build")

	chunks, err := s.collectChunks(ctx)
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	records := make([]domain.IndexRecord, 0, len(chunks))
	if len(chunks) > 0 {
		if s.embedder == nil {
			return fmt.Errorf("rebuild: %w", domain.ErrEmbeddingUnavailable)
		}

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		logger.Info("Embedding %d chunks with %s", len(chunks), s.embedder.ModelName())
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("rebuild: embedding chunks: %w", err)
		}

		for i, c := range chunks {
			records = append(records, domain.IndexRecord{Vector: vectors[i], Chunk: c})
		}
	} else {
		logger.Warn("No documents found, building empty index")
	}

	index, err := s.newIndex(records)
	if err != nil {
		return fmt.Errorf("rebuild: building index: %w", err)
	}

	s.swap(index)
	logger.Info("Index built with %d chunks", index.Len())

	if err := s.store.Save(ctx, records); err != nil {
		return fmt.Errorf("rebuild: persisting index: %w", err)
	}
	logger.Debug("Index persisted")
	return nil
}

// collectChunks lists, normalises, and chunks every source document.
// Documents that fail to decode are skipped with a warning.
func (s *RetrievalService) collectChunks(ctx context.Context) ([]domain.Chunk, error) {
	raws, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	logger.Debug("Found %d source documents", len(raws))

	var chunks []domain.Chunk
	for i := range raws {
		raw := &raws[i]

		normaliser, ok := s.normalisers[raw.Ext]
		if !ok {
			logger.Debug("Skipping %s: no normaliser for %q", raw.URI, raw.Ext)
			continue
		}

		doc, err := normaliser.Normalise(ctx, raw)
		if err != nil {
			logger.Warn("Skipping %s: %v", raw.URI, err)
			continue
		}

		docChunks := s.chunker.ChunkDocument(doc)
		logger.Debug("Chunked %s into %d chunks", doc.Source, len(docChunks))
		chunks = append(chunks, docChunks...)
	}
	return chunks, nil
}

// Retrieve returns the topK nearest chunks for the query. Query-time
// failures degrade to an empty result set with a warning.
func (s *RetrievalService) Retrieve(
	ctx context.Context, query string, topK int,
) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}

	if topK <= 0 {
		topK = s.topK
	}

	index := s.snapshot()
	if index == nil || index.Len() == 0 {
		logger.Debug("Index empty, no results for %q", query)
		return []domain.RetrievalResult{}, nil
	}

	if s.embedder == nil {
		logger.Warn("No embedding provider, cannot embed query")
		return []domain.RetrievalResult{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return []domain.RetrievalResult{}, nil
	}

	results, err := index.Search(ctx, vector, topK)
	if err != nil {
		logger.Warn("Index search failed: %v", err)
		return []domain.RetrievalResult{}, nil
	}

	logger.Debug("Retrieved %d chunks for %q", len(results), query)
	return results, nil
}

// ContextForQuery formats the top results into a grounding string.
// It never fails; internal errors degrade to an empty string.
func (s *RetrievalService) ContextForQuery(ctx context.Context, query string, topK int) string {
	results, err := s.Retrieve(ctx, query, topK)
	if err != nil || len(results) == 0 {
		return ""
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Source: %s]\n%s", r.Chunk.Source, r.Chunk.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// Ask answers a question through the LLM, grounded on the retrieved
// context. The question is sent as-is when no context is available.
func (s *RetrievalService) Ask(
	ctx context.Context, question string, mode domain.ResponseMode,
) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("ask: %w: no LLM configured", domain.ErrLLMUnavailable)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("ask: %w: empty question", domain.ErrInvalidInput)
	}

	systemPrompt := detailedSystemPrompt
	maxTokens := s.detailedMaxTokens
	if mode == domain.ResponseModeConcise {
		systemPrompt = conciseSystemPrompt
		maxTokens = s.conciseMaxTokens
	}

	userMessage := question
	if grounding := s.ContextForQuery(ctx, question, 0); grounding != "" {
		userMessage = fmt.Sprintf("Context Information:\n%s\n\nUser Question: %s", grounding, question)
	} else {
		logger.Debug("No context retrieved, answering ungrounded")
	}

	answer, err := s.llm.Generate(ctx, []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: userMessage},
	}, driven.GenerateOptions{
		MaxTokens:   maxTokens,
		Temperature: s.llmTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}
	return answer, nil
}

// Len returns the number of indexed chunks.
func (s *RetrievalService) Len() int {
	index := s.snapshot()
	if index == nil {
		return 0
	}
	return index.Len()
}

func (s *RetrievalService) swap(index driven.VectorIndex) {
	s.mu.Lock()
	s.index = index
	s.mu.Unlock()
}

func (s *RetrievalService) snapshot() driven.VectorIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}
