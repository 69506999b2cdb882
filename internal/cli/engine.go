package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/draftsmith-ai/draftsmith/internal/archive"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/openai"
	"github.com/draftsmith-ai/draftsmith/internal/service"
	"github.com/draftsmith-ai/draftsmith/internal/state"
	openaiapi "github.com/sashabaranov/go-openai"
)

// BuildEngine wires the state stores, scanner, optional OpenAI clients and
// optional archive into a ready Engine. Used both by the daemon and by the
// in-process operator commands, so both drive identical wiring.
func BuildEngine(ctx context.Context, cfg *config.Config) (*service.Engine, error) {
	paths := state.NewPaths(cfg.DataDir)
	if err := paths.Ensure(); err != nil {
		return nil, fmt.Errorf("failed to prepare data dir: %w", err)
	}

	ledgerStore := state.NewLedgerStore(paths.Ledger())
	indexStore := state.NewIndexStore(paths.Index())
	cacheStore := state.NewCacheStore(paths.CacheDir())
	vectorStore := state.NewVectorStore(paths.Vectors())
	lock := state.NewIngestLock(paths.Lock())

	roots, err := config.LoadRoots(cfg.RootsFile)
	if err != nil {
		return nil, err
	}
	scanner := service.NewScanner(roots.Roots)

	var embedder service.EmbeddingClient
	var generator service.GenerationClient
	if cfg.HasOpenAI() {
		clientCfg := openai.Config{
			APIKey:          cfg.OpenAIAPIKey,
			EmbeddingModel:  openaiapi.EmbeddingModel(cfg.EmbeddingModel),
			CompletionModel: cfg.CompletionModel,
		}
		embedder = openai.NewEmbeddingClientWithConfig(clientCfg)
		generator = openai.NewGenerationClientWithConfig(clientCfg)
	} else {
		log.Println("OPENAI_API_KEY not set: scoring is lexical-only, compose disabled")
	}

	var archiveStore archive.Store
	if cfg.ArchiveEnabled {
		if cfg.HasS3() {
			s3Store, err := archive.NewS3Store(ctx, archive.S3StoreConfig{
				Endpoint:        cfg.S3Endpoint,
				Region:          cfg.S3Region,
				AccessKeyID:     cfg.S3AccessKey,
				SecretAccessKey: cfg.S3SecretKey,
				Bucket:          cfg.S3Bucket,
				UsePathStyle:    true,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create S3 archive: %w", err)
			}
			if err := s3Store.EnsureBucket(ctx); err != nil {
				return nil, fmt.Errorf("failed to ensure archive bucket: %w", err)
			}
			archiveStore = s3Store
		} else {
			localStore, err := archive.NewLocalStore(paths.ArchiveDir())
			if err != nil {
				return nil, fmt.Errorf("failed to create local archive: %w", err)
			}
			archiveStore = localStore
		}
	}

	ingestSvc := service.NewIngestService(
		scanner,
		ledgerStore,
		indexStore,
		cacheStore,
		vectorStore,
		archiveStore,
		embedder,
		lock,
		service.IngestConfig{
			MaxContentChars: cfg.MaxContentChars,
			PreviewChars:    cfg.PreviewChars,
			BatchSize:       cfg.BatchSize,
		},
	)

	scorer := service.NewScorer(embedder)
	selector := service.NewSelector(service.DefaultSelectionConfig())
	assembler := service.NewAssembler(cacheStore)
	contextSvc := service.NewContextService(
		indexStore,
		vectorStore,
		scorer,
		selector,
		assembler,
		cfg.DefaultMaxItems,
	)

	var composeSvc *service.ComposeService
	if generator != nil {
		composeSvc = service.NewComposeService(contextSvc, generator)
	}

	maintenanceSvc := service.NewMaintenanceService(
		ledgerStore,
		indexStore,
		cacheStore,
		vectorStore,
		lock,
		archiveStore,
		cfg.DataDir,
	)

	return service.NewEngine(ingestSvc, contextSvc, composeSvc, maintenanceSvc), nil
}
