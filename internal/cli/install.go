package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modforge-labs/modforge/internal/archive"
	"github.com/modforge-labs/modforge/internal/buildcfg"
	"github.com/modforge-labs/modforge/internal/config"
	"github.com/modforge-labs/modforge/internal/installer"
	"github.com/modforge-labs/modforge/internal/modinfo"
	"github.com/modforge-labs/modforge/internal/platform"
)

var (
	installRepo      string
	installOutDir    string
	installThumbnail string
	installModsDir   string
	installVerbose   bool
)

var installCmd = &cobra.Command{
	Use:   "install [mod-name]",
	Short: "Build mods and install them into the Factorio mods folder",
	Long: `Build every mod found in the repository (or just the named one) into the
build output directory, then copy each archive into the platform's Factorio
mods folder. Archives with the same name are overwritten; older versions
already installed are left in place.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args, true)
	},
}

func init() {
	addPipelineFlags(installCmd)
	installCmd.Flags().StringVar(&installModsDir, "mods-dir", "", "Install into this directory instead of the platform default")
	rootCmd.AddCommand(installCmd)
}

// addPipelineFlags registers the flags shared by install and pack.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&installRepo, "repo", ".", "Repository root containing mod directories")
	cmd.Flags().StringVar(&installOutDir, "out-dir", "", "Build output directory (default: build)")
	cmd.Flags().StringVar(&installThumbnail, "thumbnail", "", "Default thumbnail PNG for mods without one")
	cmd.Flags().BoolVarP(&installVerbose, "verbose", "v", false, "Print per-file packaging progress")
}

// runPipeline is the shared install/pack flow: discover, package, and, when
// install is true, copy into the mods directory.
func runPipeline(cmd *cobra.Command, args []string, install bool) error {
	config.Load()

	filter := ""
	if len(args) == 1 {
		filter = args[0]
	}

	repoRoot, err := filepath.Abs(installRepo)
	if err != nil {
		return fmt.Errorf("resolving repository root: %w", err)
	}

	report, err := modinfo.Discover(repoRoot, filter)
	if err != nil {
		return err
	}
	if len(report.Descriptors) == 0 && len(report.Malformed) == 0 {
		return fmt.Errorf("no mods found in %s. Each mod needs an %s in its own subdirectory", repoRoot, modinfo.InfoFileName)
	}

	bcfg, err := buildcfg.Load(repoRoot)
	if err != nil {
		return err
	}

	inst := &installer.Installer{
		OutDir: resolveOutDir(repoRoot, bcfg),
		Builder: archive.Builder{
			Excludes:         bcfg.EffectiveExcludes(),
			DefaultThumbnail: resolveThumbnail(repoRoot, bcfg),
		},
	}
	if installVerbose {
		inst.Progress = cmd.ErrOrStderr()
		inst.Builder.Progress = cmd.ErrOrStderr()
	}
	if install {
		inst.ModsDir, err = resolveModsDir()
		if err != nil {
			return err
		}
	}

	results, err := inst.Run(report.Descriptors)
	if err != nil {
		return err
	}

	return printSummary(cmd, results, report.Malformed)
}

// resolveOutDir applies the flag > modforge.yaml > user config precedence.
// Relative paths are anchored at the repository root.
func resolveOutDir(repoRoot string, bcfg *buildcfg.Config) string {
	dir := installOutDir
	if dir == "" {
		dir = bcfg.OutDir
	}
	if dir == "" {
		dir = config.Get(config.KeyOutDir)
	}
	if dir == "" {
		dir = config.DefaultOutDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoRoot, dir)
	}
	return dir
}

// resolveThumbnail loads the default thumbnail with flag > modforge.yaml >
// user config precedence, the same order resolveOutDir uses. A missing file
// just disables injection.
func resolveThumbnail(repoRoot string, bcfg *buildcfg.Config) []byte {
	if installThumbnail != "" {
		if data, err := os.ReadFile(installThumbnail); err == nil {
			return data
		}
		return nil
	}
	if data := bcfg.ThumbnailBytes(repoRoot); data != nil {
		return data
	}
	if path := config.Get(config.KeyThumbnail); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return data
		}
	}
	return nil
}

// resolveModsDir applies the flag > user config > platform precedence.
func resolveModsDir() (string, error) {
	if installModsDir != "" {
		return installModsDir, nil
	}
	if dir := config.Get(config.KeyModsDir); dir != "" {
		return dir, nil
	}
	return platform.DefaultModsDir()
}

// printSummary writes one outcome line per mod and returns an error if any
// mod failed, so the process exits nonzero on partial failure.
func printSummary(cmd *cobra.Command, results []installer.Result, malformed []*modinfo.MalformedDescriptorError) error {
	out := cmd.OutOrStdout()
	failed := len(malformed)

	for _, m := range malformed {
		fmt.Fprintf(out, "  ✗ %s: skipped (%v)\n", filepath.Base(m.Dir), m.Err)
	}
	for _, r := range results {
		if r.Failed() {
			failed++
			fmt.Fprintf(out, "  ✗ %s: %v\n", r.Descriptor.Token(), r.Err)
			continue
		}
		dest := r.Artifact.InstallPath
		if dest == "" {
			dest = r.Artifact.ArchivePath
		}
		fmt.Fprintf(out, "  ✓ %s -> %s\n", r.Descriptor.Token(), dest)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d mods failed", failed, len(results)+len(malformed))
	}
	return nil
}
