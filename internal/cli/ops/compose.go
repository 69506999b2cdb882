package ops

import (
	"context"
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/service"
	"github.com/spf13/cobra"
)

// ComposeCmd creates the compose command
func ComposeCmd() *cobra.Command {
	var (
		typeHint string
		maxItems int
		style    string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "compose <topic>",
		Short: "Generate a draft grounded in selected context",
		Long:  "Assembles a context bundle for the topic and asks the generation service for a draft. Requires OPENAI_API_KEY.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runCompose(cmd.Context(), args[0], typeHint, maxItems, style, outDir, outputJSON)
		},
	}

	cmd.Flags().StringVarP(&typeHint, "type", "t", "", "Boost items of this content type")
	cmd.Flags().IntVarP(&maxItems, "max", "n", 0, "Maximum items in the bundle (default from config)")
	cmd.Flags().StringVarP(&style, "style", "s", "", "Style directives passed to the generator")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Write draft.md and bundle.json under this directory")

	return cmd
}

func runCompose(ctx context.Context, topic, typeHint string, maxItems int, style, outDir string, outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	engine, err := cli.BuildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	if !engine.CanCompose() {
		return fmt.Errorf("compose requires OPENAI_API_KEY to be set")
	}

	query, err := buildQuery(topic, typeHint, maxItems)
	if err != nil {
		return err
	}

	result, err := engine.Compose(ctx, service.ComposeInput{
		Query:           query,
		StyleDirectives: style,
		OutDir:          outDir,
	})
	if err != nil {
		return fmt.Errorf("compose failed: %w", err)
	}

	if outputJSON {
		return printJSON(result)
	}

	fmt.Println(result.Draft)
	if result.Bundle != nil {
		fmt.Printf("\n---\nGrounded in %d context blocks.\n", len(result.Bundle.Blocks))
	}
	if outDir != "" {
		fmt.Printf("Draft and bundle written under %s.\n", outDir)
	}
	printItemErrors(result.Errors)
	return nil
}
