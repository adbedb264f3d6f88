package organizer

import (
	"errors"
	"fmt"
)

// ErrNoSourceRoots is returned by Calculate when neither the call nor
// the organizer configuration names a source root.
var ErrNoSourceRoots = errors.New("no source roots configured")

// ErrQuit is returned by a resolver when the user asked to abort the
// whole resolution pass. Nothing resolved after the quit is committed.
var ErrQuit = errors.New("resolution aborted by user")

// MoveError reports one failed move. It never aborts the rest of the
// batch; the executor collects these and keeps going.
type MoveError struct {
	Source string
	Target string
	Err    error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %q into %q: %v", e.Source, e.Target, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
