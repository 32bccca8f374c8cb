package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheMaxAge is how long a cached version check stays fresh. The
// startup banner never hits the network inside this window.
const DefaultCacheMaxAge = 24 * time.Hour

const cacheFileName = "version-check.json"

// VersionCache is the on-disk record of the last release check, stored next
// to the user config under ~/.modforge/.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

func cachePath(configDir string) string {
	return filepath.Join(configDir, cacheFileName)
}

// LoadCache reads the cached version check. A missing file is not an error;
// it returns nil, nil so the first run is indistinguishable from a stale one.
func LoadCache(configDir string) (*VersionCache, error) {
	data, err := os.ReadFile(cachePath(configDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	cache := &VersionCache{}
	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return cache, nil
}

// SaveCache writes the version check record, creating the config directory
// if needed.
func SaveCache(configDir string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}
	if err := os.WriteFile(cachePath(configDir), data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}

// IsCacheStale reports whether the record is older than maxAge. A nil cache
// counts as stale.
func IsCacheStale(cache *VersionCache, maxAge time.Duration) bool {
	return cache == nil || time.Since(cache.CheckedAt) > maxAge
}
