//go:build integration

package integration_test

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RepoDir string // A mock mod repository root
	OutDir  string // Build output directory
	ModsDir string // Stand-in for the Factorio mods directory
}

// setupTestEnv creates isolated temp directories and points MODFORGE_MODS_DIR
// at a sandboxed mods directory. The env var is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RepoDir: t.TempDir(),
		OutDir:  filepath.Join(t.TempDir(), "build"),
		ModsDir: t.TempDir(),
	}

	t.Setenv("MODFORGE_MODS_DIR", env.ModsDir)

	return env
}

// writeMod creates a mod directory under repoDir with an info.json and the
// given extra files. Returns the mod directory path.
func writeMod(t *testing.T, repoDir, dir, name, version string, files map[string]string) string {
	t.Helper()

	modDir := filepath.Join(repoDir, dir)
	info := fmt.Sprintf(`{"name": %q, "version": %q, "title": "Test Mod", "factorio_version": "1.1"}`, name, version)
	writeFile(t, filepath.Join(modDir, "info.json"), info)
	for rel, content := range files {
		writeFile(t, filepath.Join(modDir, rel), content)
	}
	return modDir
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// archiveEntries returns the set of entry names inside a zip archive.
func archiveEntries(t *testing.T, path string) map[string]bool {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("opening archive %s: %v", path, err)
	}
	defer zr.Close()

	entries := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = true
	}
	return entries
}
