package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/modinfo"
)

var (
	listRepo string
	listJSON bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods found in the repository",
	Long:  `Scan the repository root and list every mod directory with a parseable info.json.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listRepo, "repo", ".", "Repository root containing mod directories")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a discovered mod for display.
type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Title   string `json:"title,omitempty"`
	Dir     string `json:"dir"`
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot, err := filepath.Abs(listRepo)
	if err != nil {
		return fmt.Errorf("resolving repository root: %w", err)
	}

	report, err := modinfo.Discover(repoRoot, "")
	if err != nil {
		return err
	}

	if len(report.Descriptors) == 0 && len(report.Malformed) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No mods found.")
		return nil
	}

	entries := make([]listEntry, 0, len(report.Descriptors))
	for _, d := range report.Descriptors {
		entries = append(entries, listEntry{
			Name:    d.Name,
			Version: d.Version,
			Title:   d.Title,
			Dir:     d.SourceDir,
		})
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tVERSION\tDIR")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Version, e.Dir)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	for _, m := range report.Malformed {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s has a malformed %s: %v\n",
			filepath.Base(m.Dir), modinfo.InfoFileName, m.Err)
	}
	return nil
}
