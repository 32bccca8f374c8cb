// Package archive builds Factorio mod zip files. Every archive contains a
// single top-level directory named "<name>_<version>" mirroring the mod's
// source tree, with forward-slash entry paths as the game expects.
package archive
