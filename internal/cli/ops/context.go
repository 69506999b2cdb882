package ops

import (
	"context"
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/spf13/cobra"
)

// ContextCmd creates the context command
func ContextCmd() *cobra.Command {
	var (
		typeHint string
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "context <topic>",
		Short: "Select grounding context for a topic",
		Long:  "Scores the indexed corpus against the topic and prints the selected, type-balanced bundle.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runContext(cmd.Context(), args[0], typeHint, maxItems, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&typeHint, "type", "t", "", "Boost items of this content type")
	cmd.Flags().IntVarP(&maxItems, "max", "n", 0, "Maximum items in the bundle (default from config)")

	return cmd
}

func buildQuery(topic, typeHint string, maxItems int) (domain.ContextQuery, error) {
	query := domain.ContextQuery{
		Topic:    topic,
		MaxItems: maxItems,
	}
	if typeHint != "" {
		ct, err := domain.ParseContentType(typeHint)
		if err != nil {
			return domain.ContextQuery{}, err
		}
		query.TypeHint = ct
	}
	return query, nil
}

func runContext(ctx context.Context, topic, typeHint string, maxItems int, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	query, err := buildQuery(topic, typeHint, maxItems)
	if err != nil {
		return err
	}

	result, err := engine.GetContext(ctx, query)
	if err != nil {
		return fmt.Errorf("context selection failed: %w", err)
	}

	if outputJSON {
		return printJSON(result)
	}

	printBundle(result.Bundle)
	printItemErrors(result.Errors)
	return nil
}

func printBundle(bundle *domain.ContextBundle) {
	if bundle == nil || len(bundle.Blocks) == 0 {
		fmt.Println("No context selected. Is the corpus ingested?")
		return
	}

	fmt.Printf("Context for %q (%d blocks):\n\n", bundle.Topic, len(bundle.Blocks))
	for i, block := range bundle.Blocks {
		fmt.Printf("%d. [%s] %s (%.3f, %s)\n", i+1, block.Type, block.SourceLabel, block.Score, block.Reason)
		preview := block.Text
		if len(preview) > 160 {
			preview = preview[:157] + "..."
		}
		fmt.Printf("   %s\n", preview)
	}
}

func printItemErrors(errs []domain.ItemError) {
	if len(errs) == 0 {
		return
	}
	fmt.Println("\nWarnings:")
	for _, itemErr := range errs {
		if itemErr.SourcePath != "" {
			fmt.Printf("  %s: %s\n", itemErr.SourcePath, itemErr.Message)
			continue
		}
		fmt.Printf("  %s\n", itemErr.Message)
	}
}
