package cli

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/scaffold"
)

// Factorio mod names: word characters plus dashes, no path separators.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var (
	createOutputDir string
	createAuthor    string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new mod directory",
	Long: `Create a new mod skeleton with a valid info.json plus starter control.lua,
data.lua, and changelog.txt files.

Examples:
  modforge create alien-biomes
  modforge create planets --author kovarex --output-dir mods/planets`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid mod name %q: use letters, digits, dashes, and underscores", name)
		}

		outDir := createOutputDir
		if outDir == "" {
			outDir = filepath.Join(".", name)
		}

		result, err := scaffold.Generate(scaffold.NewData(name, createAuthor), outDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created mod %s in %s\n", name, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Author recorded in info.json")
	rootCmd.AddCommand(createCmd)
}
