package modinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Load reads and validates the info.json inside dir, returning the mod's
// Descriptor. The returned descriptor has SourceDir set to dir.
func Load(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, InfoFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s: %s", path, result.Issues[0])
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	d.SourceDir = dir

	if err := checkIdentity(&d); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &d, nil
}

// checkIdentity enforces the naming contract: name and version must combine
// into a filesystem-safe "<name>_<version>" token.
func checkIdentity(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("mod name is empty")
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return fmt.Errorf("mod name %q contains a path separator", d.Name)
	}
	if d.Version == "" {
		return fmt.Errorf("mod version is empty")
	}
	if _, err := semver.NewVersion(d.Version); err != nil {
		return fmt.Errorf("mod version %q is not a valid version: %w", d.Version, err)
	}
	return nil
}
