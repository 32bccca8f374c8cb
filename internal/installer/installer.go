package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/modforge-labs/modforge/internal/archive"
	"github.com/modforge-labs/modforge/internal/modinfo"
	"github.com/modforge-labs/modforge/internal/platform"
)

// ErrBuildDirUnavailable means the build output directory cannot be created
// or written. No mod can possibly succeed, so the whole run fails.
var ErrBuildDirUnavailable = errors.New("build output directory unavailable")

// ErrInstallPathUnavailable means the mods directory cannot be created.
// The affected mod fails; the batch continues.
var ErrInstallPathUnavailable = errors.New("mods directory unavailable")

// State is a mod's position in the packaging pipeline.
type State string

const (
	StateValidated State = "validated"
	StatePackaged  State = "packaged"
	StateInstalled State = "installed"
	StateFailed    State = "failed"
)

// Artifact records where a mod's archive ended up. InstallPath is empty when
// only packaging was requested.
type Artifact struct {
	ArchivePath string
	InstallPath string
}

// Result is the terminal outcome for one mod.
type Result struct {
	Descriptor modinfo.Descriptor
	State      State
	Artifact   *Artifact
	Err        error
}

// Failed reports whether the mod ended in the failed state.
func (r *Result) Failed() bool {
	return r.State == StateFailed
}

// Installer packages mods into OutDir and installs the archives into ModsDir.
type Installer struct {
	// OutDir is the local build output directory, created if missing.
	OutDir string
	// ModsDir is the resolved platform mods directory. Empty disables the
	// install step (package-only runs).
	ModsDir string
	// Builder writes the archives. A zero Builder is usable.
	Builder archive.Builder
	// Progress receives one outcome line per mod. Nil means silent.
	Progress io.Writer
}

// Run processes mods sequentially, packaging and (when ModsDir is set)
// installing each one. Per-mod failures are recorded in the results; the
// returned error is non-nil only for run-level failures, i.e. an unusable
// build output directory.
func (in *Installer) Run(mods []modinfo.Descriptor) ([]Result, error) {
	if err := in.ensureOutDir(); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(mods))
	for _, d := range mods {
		results = append(results, in.runOne(d))
	}
	return results, nil
}

// runOne advances a single mod through the pipeline.
func (in *Installer) runOne(d modinfo.Descriptor) Result {
	res := Result{Descriptor: d, State: StateValidated}

	artifact, err := in.packageMod(&d)
	if err != nil {
		res.State = StateFailed
		res.Err = err
		in.logf("failed  %s: %v", d.Token(), err)
		return res
	}
	res.State = StatePackaged
	res.Artifact = artifact

	if in.ModsDir == "" {
		in.logf("packaged  %s -> %s", d.Token(), artifact.ArchivePath)
		return res
	}

	if err := in.installArchive(artifact); err != nil {
		res.State = StateFailed
		res.Err = err
		in.logf("failed  %s: %v", d.Token(), err)
		return res
	}
	res.State = StateInstalled
	in.logf("installed %s -> %s", d.Token(), artifact.InstallPath)
	return res
}

// packageMod builds the mod's archive into OutDir.
func (in *Installer) packageMod(d *modinfo.Descriptor) (*Artifact, error) {
	outPath := filepath.Join(in.OutDir, d.ArchiveName())
	if err := in.Builder.Build(d.SourceDir, outPath, d.Token()); err != nil {
		return nil, fmt.Errorf("packaging %s: %w", d.Token(), err)
	}
	return &Artifact{ArchivePath: outPath}, nil
}

// installArchive copies the built archive into ModsDir, overwriting a file of
// the same name. Archives of other versions already installed are left alone.
func (in *Installer) installArchive(a *Artifact) error {
	if err := os.MkdirAll(in.ModsDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrInstallPathUnavailable, err)
	}

	dest := filepath.Join(in.ModsDir, filepath.Base(a.ArchivePath))
	if err := copyFile(a.ArchivePath, dest); err != nil {
		return fmt.Errorf("installing to %s: %w", dest, err)
	}
	a.InstallPath = dest
	return nil
}

// ensureOutDir creates the build output directory and probes that it is
// writable before any packaging starts.
func (in *Installer) ensureOutDir() error {
	if err := os.MkdirAll(in.OutDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrBuildDirUnavailable, err)
	}
	probe, err := os.CreateTemp(in.OutDir, ".modforge-probe-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildDirUnavailable, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}

func (in *Installer) logf(format string, args ...any) {
	if in.Progress != nil {
		fmt.Fprintf(in.Progress, format+"\n", args...)
	}
}

// copyFile streams src to dst, truncating any existing file of that name.
func copyFile(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, f); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return platform.Chmod(dst, 0644)
}
