package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/spf13/cobra"
)

// IngestCmd creates the ingest command
func IngestCmd() *cobra.Command {
	var (
		force     bool
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Scan the corpus and index changed files",
		Long:  "Runs one change-aware ingestion pass. Unchanged files are skipped by fingerprint; --force reprocesses everything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runIngest(cmd.Context(), force, batchSize, outputJSON)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reprocess every file regardless of fingerprint")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Files per checkpoint commit (default from config)")

	return cmd
}

func runIngest(ctx context.Context, force bool, batchSize int, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := engine.Ingest(ctx, force)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if outputJSON {
		return printJSON(result)
	}

	fmt.Printf("Ingest run %s finished in %v.\n\n", result.RunID, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	fmt.Printf("  Scanned:   %d\n", result.Scanned)
	fmt.Printf("  Processed: %d\n", result.Processed)
	fmt.Printf("  Unchanged: %d\n", result.Unchanged)
	fmt.Printf("  Truncated: %d\n", result.Truncated)
	fmt.Printf("  Failed:    %d\n", result.Failed)

	if len(result.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, itemErr := range result.Errors {
			fmt.Printf("  %s: %s\n", itemErr.SourcePath, itemErr.Message)
		}
	}

	return nil
}
