package ops

import (
	"context"
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/spf13/cobra"
)

// PruneCmd creates the prune command
func PruneCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop state for deleted corpus files",
		Long:  "Removes ledger entries, index records, caches and vectors whose source files no longer exist. Deletion is never implicit; this is the only way state is dropped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runPrune(cmd.Context(), dryRun, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be removed without touching state")

	return cmd
}

func runPrune(ctx context.Context, dryRun, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := engine.Prune(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}

	if outputJSON {
		return printJSON(result)
	}

	verb := "Removed"
	if result.DryRun {
		verb = "Would remove"
	}
	fmt.Printf("%s %d ledger entries, %d index records, %d cached copies, %d archived copies.\n",
		verb, result.RemovedEntries, result.RemovedRecords, result.RemovedCaches, result.RemovedArchives)
	printItemErrors(result.Errors)
	return nil
}
