// Package platform resolves the OS-specific Factorio mods directory and
// provides small cross-platform filesystem helpers. The resolution logic is a
// pure function over an OS name, home directory, and environment lookup so it
// can be tested for every platform without touching the live environment.
package platform
