// Package installer drives the per-mod pipeline: build the mod's archive into
// the build output directory, then copy it into the Factorio mods directory.
// Each mod moves through a linear state machine (validated, packaged,
// installed, or failed) and one mod's failure never aborts the batch.
package installer
