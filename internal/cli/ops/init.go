package ops

import (
	"fmt"
	"os"

	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/state"
	"github.com/spf13/cobra"
)

// InitCmd creates the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a draftsmith workspace",
		Long:  "Creates the data directory, a corpus.yaml scaffold and the declared corpus directories.",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runInit(outputJSON)
		},
	}

	return cmd
}

func runInit(outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.RootsFile); err == nil {
		return fmt.Errorf("%s already exists", cfg.RootsFile)
	}

	paths := state.NewPaths(cfg.DataDir)
	if err := paths.Ensure(); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	roots := config.DefaultRoots()
	if err := config.SaveRoots(cfg.RootsFile, roots); err != nil {
		return err
	}

	for _, root := range roots.Roots {
		if err := os.MkdirAll(root.Path, 0o755); err != nil {
			return fmt.Errorf("failed to create corpus dir %s: %w", root.Path, err)
		}
	}

	if outputJSON {
		return printJSON(map[string]interface{}{
			"data_dir":   cfg.DataDir,
			"roots_file": cfg.RootsFile,
			"roots":      roots.Roots,
		})
	}

	fmt.Printf("Initialized draftsmith workspace.\n\n")
	fmt.Printf("  Data dir:   %s\n", cfg.DataDir)
	fmt.Printf("  Roots file: %s\n\n", cfg.RootsFile)
	fmt.Println("Drop corpus files into the declared directories, then run 'draftsmith ingest'.")
	return nil
}
