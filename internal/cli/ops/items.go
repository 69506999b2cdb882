package ops

import (
	"context"
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/spf13/cobra"
)

// ItemsCmd creates the items command
func ItemsCmd() *cobra.Command {
	var (
		cursor string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List indexed items",
		Long:  "Pages through the index, most recently processed first. Pass the cursor from a previous page to continue.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runItems(cmd.Context(), cursor, limit, outputJSON)
		},
	}

	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from a previous page")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Items per page")

	return cmd
}

func runItems(ctx context.Context, cursor string, limit int, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	page, err := engine.ListItems(ctx, cursor, limit)
	if err != nil {
		return fmt.Errorf("items failed: %w", err)
	}

	if outputJSON {
		return printJSON(page)
	}

	if len(page.Items) == 0 {
		fmt.Println("No indexed items.")
		return nil
	}

	for _, record := range page.Items {
		fmt.Printf("%s  %-12s %-10s %s\n",
			record.ID, record.Type, record.Priority, record.SourcePath)
	}

	if page.HasMore {
		fmt.Printf("\nMore items available. Continue with --cursor %s\n", page.Cursor)
	}

	return nil
}
