// Command shopsage builds a vector index over support documents and
// ranks a product catalog against chat transcripts.
package main

import (
	"context"
	"fmt"
	"os"

	catalogfile "github.com/ankushsurana/shopsage/internal/adapters/driven/catalog/file"
	configfile "github.com/ankushsurana/shopsage/internal/adapters/driven/config/file"
	ollamaembed "github.com/ankushsurana/shopsage/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/ankushsurana/shopsage/internal/adapters/driven/embedding/openai"
	openaillm "github.com/ankushsurana/shopsage/internal/adapters/driven/llm/openai"
	"github.com/ankushsurana/shopsage/internal/adapters/driven/vectorindex/disk"
	"github.com/ankushsurana/shopsage/internal/adapters/driven/vectorindex/flat"
	"github.com/ankushsurana/shopsage/internal/adapters/driving/cli"
	"github.com/ankushsurana/shopsage/internal/connectors/filesystem"
	"github.com/ankushsurana/shopsage/internal/core/domain"
	"github.com/ankushsurana/shopsage/internal/core/ports/driven"
	"github.com/ankushsurana/shopsage/internal/core/services"
	"github.com/ankushsurana/shopsage/internal/logger"
	"github.com/ankushsurana/shopsage/internal/normalisers/pdf"
	"github.com/ankushsurana/shopsage/internal/normalisers/plaintext"
	"github.com/ankushsurana/shopsage/internal/postprocessors/chunker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore(os.Getenv("SHOPSAGE_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings, err := configStore.Load()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", configStore.Path(), err)
	}

	embedder, err := buildEmbedder(settings.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	var llm driven.LLMService
	if settings.LLM.APIKey != "" {
		llm, err = openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.LLM.APIKey,
			BaseURL: settings.LLM.BaseURL,
			Model:   settings.LLM.Model,
		})
		if err != nil {
			return fmt.Errorf("configuring LLM: %w", err)
		}
	}

	chunkProcessor, err := chunker.New(settings.Chunking.Size, settings.Chunking.Overlap)
	if err != nil {
		return err
	}

	source := filesystem.New(settings.Retrieval.DataDir)
	defer source.Close()

	retrieval := services.NewRetrievalService(
		source,
		[]driven.Normaliser{plaintext.New(), pdf.New()},
		chunkProcessor,
		embedder,
		func(records []domain.IndexRecord) (driven.VectorIndex, error) {
			return flat.New(records)
		},
		disk.NewStore(settings.Retrieval.IndexPath),
		llm,
		settings,
	)

	catalog, err := catalogfile.NewStore(settings.Ranker.CatalogPath).Load(context.Background())
	if err != nil {
		logger.Warn("Catalog unavailable: %v", err)
	}
	recommend := services.NewRecommendationService(catalog, settings.Ranker)

	cli.SetServices(&cli.Services{
		Retrieval: retrieval,
		Recommend: recommend,
		Source:    source,
	})

	return cli.Execute()
}

func buildEmbedder(cfg domain.ProviderSettings) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil

	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})

	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrConfiguration, cfg.Provider)
	}
}
