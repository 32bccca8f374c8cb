package modinfo

import (
	"errors"
	"fmt"
)

// ErrNotARepository means the supplied root does not exist or is not a
// directory. Fatal for the whole run.
var ErrNotARepository = errors.New("not a mod repository")

// ErrNoMatchingMod means a name filter matched none of the discovered mods.
// Fatal for the whole run.
var ErrNoMatchingMod = errors.New("no mod matches filter")

// MalformedDescriptorError attributes an unreadable or schema-invalid
// info.json to its directory. It is collected during a scan rather than
// aborting it.
type MalformedDescriptorError struct {
	Dir string
	Err error
}

func (e *MalformedDescriptorError) Error() string {
	return fmt.Sprintf("malformed descriptor in %s: %v", e.Dir, e.Err)
}

func (e *MalformedDescriptorError) Unwrap() error {
	return e.Err
}
