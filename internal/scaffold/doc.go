// Package scaffold generates new mod skeletons from embedded templates. It
// powers the "modforge create" command, producing a directory with a valid
// info.json plus starter control.lua, data.lua, and changelog files.
package scaffold
