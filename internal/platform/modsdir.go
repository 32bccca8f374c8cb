package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/modforge-labs/modforge/internal/branding"
)

// ModsDir returns the Factorio mods directory for the given OS and home
// directory. getenv supplies environment lookups (os.Getenv in production,
// a stub in tests).
//
//	windows: %APPDATA%\Factorio\mods (falling back to home\AppData\Roaming)
//	darwin:  home/Library/Application Support/factorio/mods
//	other:   home/.factorio/mods
func ModsDir(goos, home string, getenv func(string) string) string {
	switch goos {
	case "windows":
		appdata := getenv("APPDATA")
		if appdata == "" {
			appdata = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appdata, "Factorio", "mods")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "factorio", "mods")
	default:
		return filepath.Join(home, ".factorio", "mods")
	}
}

// DefaultModsDir resolves the mods directory for the running process.
// The MODFORGE_MODS_DIR environment variable overrides platform resolution.
func DefaultModsDir() (string, error) {
	if v := os.Getenv(branding.EnvVar("MODS_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return ModsDir(runtime.GOOS, home, os.Getenv), nil
}
