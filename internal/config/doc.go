// Package config manages user-level settings stored at ~/.modforge/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the build output directory and a mods-directory override.
package config
