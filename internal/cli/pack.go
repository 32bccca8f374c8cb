package cli

import (
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack [mod-name]",
	Short: "Build mod archives without installing them",
	Long: `Build every mod found in the repository (or just the named one) into the
build output directory. Nothing is copied into the Factorio mods folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args, false)
	},
}

func init() {
	addPipelineFlags(packCmd)
	rootCmd.AddCommand(packCmd)
}
