package ops

import (
	"context"
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/spf13/cobra"
)

// StatusCmd creates the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show corpus index status",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runStatus(cmd.Context(), outputJSON)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	report, err := engine.Status(ctx)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if outputJSON {
		return printJSON(report)
	}

	fmt.Printf("Data dir: %s\n", report.DataDir)
	fmt.Printf("Indexed items: %d (ledger entries: %d, embedded: %d)\n",
		report.ItemCount, report.LedgerCount, report.EmbeddedCount)
	if report.LastRunAt != nil {
		fmt.Printf("Last ingest: %s\n", report.LastRunAt.Format("2006-01-02 15:04:05 MST"))
	} else {
		fmt.Println("Last ingest: never")
	}

	if len(report.TypeCounts) > 0 {
		fmt.Println("\nBy type:")
		for _, ct := range domain.AllContentTypes() {
			if count, ok := report.TypeCounts[ct]; ok {
				fmt.Printf("  %-12s %d\n", ct, count)
			}
		}
	}

	return nil
}
