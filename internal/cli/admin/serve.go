package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/api/handlers"
	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/jobs"
	"github.com/draftsmith-ai/draftsmith/internal/server"
	"github.com/draftsmith-ai/draftsmith/internal/telemetry"
	"github.com/draftsmith-ai/draftsmith/internal/watch"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the draftsmith API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("watch", false, "Watch corpus roots and only re-ingest after changes")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	log.Printf("engine ready, data dir %s", cfg.DataDir)

	watchFlag, _ := cmd.Flags().GetBool("watch")
	var watcher *watch.Watcher
	var dirty jobs.DirtyFlag
	if watchFlag {
		roots, err := config.LoadRoots(cfg.RootsFile)
		if err != nil {
			return err
		}
		watcher, err = watch.New(roots.Roots)
		if err != nil {
			return fmt.Errorf("failed to start corpus watcher: %w", err)
		}
		dirty = watcher.Flag()
		go watcher.Start(ctx)
		log.Println("corpus watcher started")
	}

	var ingestWorker *jobs.IngestWorker
	if cfg.AutoIngestInterval > 0 {
		ingestWorker = jobs.NewIngestWorker(engine, dirty, cfg.AutoIngestInterval)
		go ingestWorker.Start(ctx)
		log.Printf("background ingestion every %v", cfg.AutoIngestInterval)
	} else if watchFlag {
		log.Println("--watch set but AUTO_INGEST_INTERVAL is zero; watcher events will not trigger ingestion")
	}

	ingestHandler := handlers.NewIngestHandler(engine)
	contextHandler := handlers.NewContextHandler(engine)
	statusHandler := handlers.NewStatusHandler(engine)

	router := server.NewRouter(server.RouterConfig{
		APIToken:       cfg.APIToken,
		IngestHandler:  ingestHandler,
		ContextHandler: contextHandler,
		StatusHandler:  statusHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if ingestWorker != nil {
		ingestWorker.Stop()
	}
	if watcher != nil {
		if err := watcher.Close(); err != nil {
			log.Printf("watcher close: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
