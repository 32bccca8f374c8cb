//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/modforge-labs/modforge/internal/installer"
	"github.com/modforge-labs/modforge/internal/modinfo"
)

func TestPackageSingleMod(t *testing.T) {
	env := setupTestEnv(t)
	writeMod(t, env.RepoDir, "foo", "foo", "1.2.0", map[string]string{
		"control.lua":      "-- control",
		"graphics/foo.png": "png",
	})

	report, err := modinfo.Discover(env.RepoDir, "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Descriptors) != 1 {
		t.Fatalf("expected 1 mod, got %d", len(report.Descriptors))
	}

	in := &installer.Installer{OutDir: env.OutDir}
	results, err := in.Run(report.Descriptors)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].State != installer.StatePackaged {
		t.Fatalf("state = %s, want %s", results[0].State, installer.StatePackaged)
	}

	archivePath := filepath.Join(env.OutDir, "foo_1.2.0.zip")
	assertFileExists(t, archivePath)

	entries := archiveEntries(t, archivePath)
	for _, want := range []string{
		"foo_1.2.0/info.json",
		"foo_1.2.0/control.lua",
		"foo_1.2.0/graphics/foo.png",
	} {
		if !entries[want] {
			t.Errorf("archive missing entry %s", want)
		}
	}
}

func TestInstallCopiesArchive(t *testing.T) {
	env := setupTestEnv(t)
	writeMod(t, env.RepoDir, "foo", "foo", "0.1.0", nil)

	report, err := modinfo.Discover(env.RepoDir, "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	in := &installer.Installer{OutDir: env.OutDir, ModsDir: env.ModsDir}
	results, err := in.Run(report.Descriptors)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].State != installer.StateInstalled {
		t.Fatalf("state = %s, want %s", results[0].State, installer.StateInstalled)
	}

	assertFileExists(t, filepath.Join(env.OutDir, "foo_0.1.0.zip"))
	assertFileExists(t, filepath.Join(env.ModsDir, "foo_0.1.0.zip"))
}

func TestInstallLeavesOtherVersions(t *testing.T) {
	env := setupTestEnv(t)
	writeMod(t, env.RepoDir, "foo", "foo", "0.2.0", nil)

	stale := filepath.Join(env.ModsDir, "foo_0.1.0.zip")
	writeFile(t, stale, "old archive")

	report, err := modinfo.Discover(env.RepoDir, "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	in := &installer.Installer{OutDir: env.OutDir, ModsDir: env.ModsDir}
	if _, err := in.Run(report.Descriptors); err != nil {
		t.Fatalf("Run: %v", err)
	}

	assertFileExists(t, stale)
	assertFileExists(t, filepath.Join(env.ModsDir, "foo_0.2.0.zip"))
}

func TestDiscoverFilterByName(t *testing.T) {
	env := setupTestEnv(t)
	writeMod(t, env.RepoDir, "alpha", "alpha-mod", "1.0.0", nil)
	writeMod(t, env.RepoDir, "beta", "beta-mod", "1.0.0", nil)

	report, err := modinfo.Discover(env.RepoDir, "beta-mod")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Descriptors) != 1 || report.Descriptors[0].Name != "beta-mod" {
		t.Fatalf("expected only beta-mod, got %+v", report.Descriptors)
	}

	_, err = modinfo.Discover(env.RepoDir, "no-such-mod")
	if !errors.Is(err, modinfo.ErrNoMatchingMod) {
		t.Fatalf("expected ErrNoMatchingMod, got %v", err)
	}
}

func TestBatchContinuesPastFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires developer mode on Windows")
	}

	env := setupTestEnv(t)
	writeMod(t, env.RepoDir, "good", "good", "1.0.0", nil)
	badDir := writeMod(t, env.RepoDir, "bad", "bad", "1.0.0", nil)
	if err := os.Symlink(filepath.Join(badDir, "info.json"), filepath.Join(badDir, "link.json")); err != nil {
		t.Fatalf("creating symlink: %v", err)
	}

	report, err := modinfo.Discover(env.RepoDir, "")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Descriptors) != 2 {
		t.Fatalf("expected 2 mods, got %d", len(report.Descriptors))
	}

	in := &installer.Installer{OutDir: env.OutDir, ModsDir: env.ModsDir}
	results, err := in.Run(report.Descriptors)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var failed, installed int
	for _, r := range results {
		switch r.State {
		case installer.StateFailed:
			failed++
		case installer.StateInstalled:
			installed++
		}
	}
	if failed != 1 || installed != 1 {
		t.Fatalf("failed = %d, installed = %d, want 1 and 1", failed, installed)
	}
	assertFileExists(t, filepath.Join(env.ModsDir, "good_1.0.0.zip"))
	assertFileNotExists(t, filepath.Join(env.ModsDir, "bad_1.0.0.zip"))
}
