package ops

import (
	"fmt"

	"github.com/draftsmith-ai/draftsmith/internal/config"
	"github.com/draftsmith-ai/draftsmith/internal/domain"
	"github.com/spf13/cobra"
)

// RootsCmd creates the roots command group
func RootsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "Show or edit the declared corpus roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runRootsList(outputJSON)
		},
	}

	cmd.AddCommand(rootsAddCmd())

	return cmd
}

func rootsAddCmd() *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Declare a new corpus root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootsAdd(args[0], contentType)
		},
	}

	cmd.Flags().StringVarP(&contentType, "type", "t", "", "Content type for every file under this root")

	return cmd
}

func runRootsList(outputJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	roots, err := config.LoadRoots(cfg.RootsFile)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(roots)
	}

	fmt.Printf("Corpus roots (%s):\n", cfg.RootsFile)
	for _, root := range roots.Roots {
		if root.Type != "" {
			fmt.Printf("  %s  (%s)\n", root.Path, root.Type)
			continue
		}
		fmt.Printf("  %s\n", root.Path)
	}
	return nil
}

func runRootsAdd(path, contentType string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if contentType != "" {
		if _, err := domain.ParseContentType(contentType); err != nil {
			return err
		}
	}

	roots, err := config.LoadRoots(cfg.RootsFile)
	if err != nil {
		return err
	}

	for _, root := range roots.Roots {
		if root.Path == path {
			return fmt.Errorf("root %s is already declared", path)
		}
	}

	roots.Roots = append(roots.Roots, config.Root{Path: path, Type: contentType})
	if err := config.SaveRoots(cfg.RootsFile, roots); err != nil {
		return err
	}

	fmt.Printf("Added root %s. Run 'draftsmith ingest' to index it.\n", path)
	return nil
}
