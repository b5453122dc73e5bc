// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agxtool/agx/internal/project"
)

var (
	// Global flags
	rootPathFlag string // Explicit workspace root (rare)

	// Resolved values
	resolvedRootPath string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "agx",
	Short: "Manage agent workflow tooling",
	Long: `Manage agent workflow tooling.

Use 'rfc' to initialize RFC project assets and create/revise RFC markdown files.
Use 'skill' to initialize, create, and validate local skills.`,
	Example: `  agx rfc init
  agx rfc new --author Freya --title "Add parser support"
  agx rfc revise 0001
  agx skill init
  agx skill new ask-user-question
  agx skill validate`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Workspace resolution is not needed for meta commands.
		switch cmd.Name() {
		case "completion", "help", "version", "docs":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		if rootPathFlag != "" {
			abs, err := filepath.Abs(rootPathFlag)
			if err != nil {
				return fmt.Errorf("resolve --root: %w", err)
			}
			resolvedRootPath = abs
			return nil
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve current directory: %w", err)
		}
		resolvedRootPath, err = project.FindRoot(cwd)
		return err
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPathFlag, "root", "", "Explicit path to the workspace root")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
}
