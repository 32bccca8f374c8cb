// Package updater implements self-update for the modforge binary. It checks
// GitHub Releases (or a configured mirror) for new versions, downloads the
// platform asset, verifies its sha256 checksum, extracts the binary, and
// swaps the running executable. A daily-cached version check powers the
// startup banner.
package updater
