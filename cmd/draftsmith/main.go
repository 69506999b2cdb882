package main

import (
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/cli/ops"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "draftsmith",
		Short: "Draftsmith CLI - corpus indexing and context selection",
		Long: `Draftsmith indexes a local corpus of text artifacts and selects
grounding context for a topic. Commands run the engine in-process
against the configured data dir.

Environment variables:
  DRAFTSMITH_DATA_DIR     State directory (default: .draftsmith)
  DRAFTSMITH_ROOTS_FILE   Corpus declaration (default: corpus.yaml)
  OPENAI_API_KEY          Enables semantic scoring and compose`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(ops.InitCmd())
	rootCmd.AddCommand(ops.IngestCmd())
	rootCmd.AddCommand(ops.ContextCmd())
	rootCmd.AddCommand(ops.ComposeCmd())
	rootCmd.AddCommand(ops.StatusCmd())
	rootCmd.AddCommand(ops.ItemsCmd())
	rootCmd.AddCommand(ops.PruneCmd())
	rootCmd.AddCommand(ops.RootsCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
