package main

import (
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/cli"
	"github.com/draftsmith-ai/draftsmith/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "draftsmithd",
		Short: "Draftsmith daemon",
		Long:  "Draftsmith daemon for serving the HTTP API and running background ingestion",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
