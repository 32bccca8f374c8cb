// Package buildcfg loads the optional per-repository build settings file.
// A modforge.yaml at the repository root can add exclude patterns and point
// at a shared default thumbnail for mods that ship none.
package buildcfg

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/modforge-labs/modforge/internal/archive"
)

// FileName is the per-repository settings filename, looked up at the repo root.
const FileName = "modforge.yaml"

// Config represents the modforge.yaml settings file.
type Config struct {
	// Excludes are additional first-level names skipped during packaging,
	// on top of the built-in exclude list.
	Excludes []string `yaml:"excludes"`
	// Thumbnail is a repo-relative path to a PNG injected into mods that
	// have no thumbnail.png of their own.
	Thumbnail string `yaml:"thumbnail"`
	// OutDir overrides the build output directory for this repository.
	OutDir string `yaml:"out_dir"`
}

// Load reads the modforge.yaml inside repoRoot. A missing file is not an
// error: it yields a zero Config, meaning built-in defaults apply.
func Load(repoRoot string) (*Config, error) {
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// EffectiveExcludes merges the built-in exclude list with the repository's
// additions, dropping duplicates.
func (c *Config) EffectiveExcludes() []string {
	merged := append([]string{}, archive.DefaultExcludes...)
	seen := make(map[string]bool, len(merged))
	for _, e := range merged {
		seen[e] = true
	}
	for _, e := range c.Excludes {
		if !seen[e] {
			seen[e] = true
			merged = append(merged, e)
		}
	}
	return merged
}

// ThumbnailBytes reads the configured default thumbnail relative to repoRoot.
// Returns nil when no thumbnail is configured or the file cannot be read.
func (c *Config) ThumbnailBytes(repoRoot string) []byte {
	if c.Thumbnail == "" {
		return nil
	}
	path := c.Thumbnail
	if !filepath.IsAbs(path) {
		path = filepath.Join(repoRoot, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}
