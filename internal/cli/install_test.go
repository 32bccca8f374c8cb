package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/modforge-labs/modforge/internal/buildcfg"
)

func TestResolveOutDir(t *testing.T) {
	repoRoot := t.TempDir()
	t.Cleanup(func() { installOutDir = "" })

	// Flag wins over modforge.yaml.
	installOutDir = "flagged"
	got := resolveOutDir(repoRoot, &buildcfg.Config{OutDir: "dist"})
	if got != filepath.Join(repoRoot, "flagged") {
		t.Errorf("resolveOutDir with flag = %q", got)
	}

	// modforge.yaml wins over the default.
	installOutDir = ""
	got = resolveOutDir(repoRoot, &buildcfg.Config{OutDir: "dist"})
	if got != filepath.Join(repoRoot, "dist") {
		t.Errorf("resolveOutDir with repo config = %q", got)
	}

	// Nothing configured falls back to the default, anchored at the repo.
	got = resolveOutDir(repoRoot, &buildcfg.Config{})
	if got != filepath.Join(repoRoot, "build") {
		t.Errorf("resolveOutDir default = %q", got)
	}

	// Absolute paths are kept as-is.
	abs := t.TempDir()
	installOutDir = abs
	if got := resolveOutDir(repoRoot, &buildcfg.Config{}); got != abs {
		t.Errorf("resolveOutDir absolute = %q, want %q", got, abs)
	}
}

func TestResolveThumbnail(t *testing.T) {
	repoRoot := t.TempDir()
	t.Cleanup(func() { installThumbnail = "" })

	repoThumb := filepath.Join(repoRoot, "assets", "thumb.png")
	if err := os.MkdirAll(filepath.Dir(repoThumb), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(repoThumb, []byte("repo thumbnail"), 0644); err != nil {
		t.Fatal(err)
	}

	flagThumb := filepath.Join(t.TempDir(), "flag.png")
	if err := os.WriteFile(flagThumb, []byte("flag thumbnail"), 0644); err != nil {
		t.Fatal(err)
	}

	bcfg := &buildcfg.Config{Thumbnail: "assets/thumb.png"}

	// Flag wins over modforge.yaml, matching resolveOutDir.
	installThumbnail = flagThumb
	if got := resolveThumbnail(repoRoot, bcfg); string(got) != "flag thumbnail" {
		t.Errorf("resolveThumbnail with flag = %q", got)
	}

	// modforge.yaml is next.
	installThumbnail = ""
	if got := resolveThumbnail(repoRoot, bcfg); string(got) != "repo thumbnail" {
		t.Errorf("resolveThumbnail with repo config = %q", got)
	}

	// Nothing configured disables injection.
	if got := resolveThumbnail(repoRoot, &buildcfg.Config{}); got != nil {
		t.Errorf("resolveThumbnail unset = %q, want nil", got)
	}

	// An unreadable flag path disables injection rather than falling through.
	installThumbnail = filepath.Join(t.TempDir(), "missing.png")
	if got := resolveThumbnail(repoRoot, bcfg); got != nil {
		t.Errorf("resolveThumbnail missing flag file = %q, want nil", got)
	}
}
