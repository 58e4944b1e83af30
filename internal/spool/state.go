// state.go - Submission state derived from spool file location.
package spool

import "errors"

// State is where a submission currently lives in the spool. It is never
// stored; it is computed from which location holds the submission file.
type State int

const (
	StateNotFound State = iota
	StateInProgress
	StateReady
	StateArchived
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "inprogress"
	case StateReady:
		return "ready"
	case StateArchived:
		return "archived"
	case StateFailed:
		return "failed"
	default:
		return "notfound"
	}
}

// ErrInvalidIdentifier reports an identifier that is empty or contains
// characters outside [0-9A-Za-z].
var ErrInvalidIdentifier = errors.New("invalid submission id")

// ValidID reports whether id is non-empty ASCII alphanumeric. Identifiers
// are interpolated into file paths, so anything else is rejected before the
// filesystem is touched.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			continue
		}
		return false
	}
	return true
}

// Lookup resolves the state of a submission by probing the four spool
// locations in a fixed order: in-progress, ready, archived, failed. The
// probe is an existence check only; an empty or corrupt file still reports
// its location. Lookup is read-only and idempotent.
func (d *Dir) Lookup(id string) (State, error) {
	if !ValidID(id) {
		return StateNotFound, ErrInvalidIdentifier
	}
	switch {
	case d.exists(d.tempPath(id)):
		return StateInProgress, nil
	case d.exists(d.readyPath(id)):
		return StateReady, nil
	case d.exists(d.archivedPath(id)):
		return StateArchived, nil
	case d.exists(d.failedPath(id)):
		return StateFailed, nil
	default:
		return StateNotFound, nil
	}
}
