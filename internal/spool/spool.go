// spool.go - Durable filesystem spool for JSON submission payloads.
//
// A submission moves through the spool purely by file location:
//
//	<root>/submission-<id>.json.temp   write started, not yet durable
//	<root>/submission-<id>.json        durable, waiting for processing
//	<root>/archive/submission-<id>.json  processed by the external consumer
//	<root>/failed/submission-<id>.json   rejected by the external consumer
//
// The spool only ever creates the first two; the archive and failed
// directories are owned by the downstream processor and are read-only here.
package spool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxIDAttempts bounds identifier regeneration when a freshly generated id
// collides with a file already present in any spool location.
const maxIDAttempts = 5

// Dir is a spool rooted at a single directory. All methods are safe for
// concurrent use: writes never share a filename and lookups are read-only.
type Dir struct {
	root string

	// exists answers whether a path is present. Tests swap this out to
	// exercise the state machine without a filesystem.
	exists func(path string) bool
}

// New opens a spool at root. The directory must already exist; a missing
// root is a startup misconfiguration, not something to paper over.
func New(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("spool directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("spool directory %s: not a directory", root)
	}
	return &Dir{root: root, exists: pathExists}, nil
}

// Root returns the spool root directory.
func (d *Dir) Root() string {
	return d.root
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (d *Dir) tempPath(id string) string {
	return filepath.Join(d.root, "submission-"+id+".json.temp")
}

func (d *Dir) readyPath(id string) string {
	return filepath.Join(d.root, "submission-"+id+".json")
}

func (d *Dir) archivedPath(id string) string {
	return filepath.Join(d.root, "archive", "submission-"+id+".json")
}

func (d *Dir) failedPath(id string) string {
	return filepath.Join(d.root, "failed", "submission-"+id+".json")
}

// Receipt describes a durably accepted submission.
type Receipt struct {
	ID   string
	Size int
}

// ValidationError reports a payload that is not well-formed JSON. The
// message is the parser's own text and is safe to return to the client.
type ValidationError struct {
	reason error
}

func (e *ValidationError) Error() string {
	return e.reason.Error()
}

// Accept durably persists body under a fresh identifier. The body must be a
// single well-formed JSON value; otherwise a *ValidationError is returned
// before any identifier is generated or any file is touched. The write is
// staged through a temp name and atomically renamed so a concurrent reader
// never observes a partial file at the final name. The body bytes are
// persisted verbatim.
func (d *Dir) Accept(body []byte) (*Receipt, error) {
	if err := validateJSON(body); err != nil {
		return nil, &ValidationError{reason: err}
	}

	id, err := d.freshID()
	if err != nil {
		return nil, err
	}

	temp := d.tempPath(id)
	if err := os.WriteFile(temp, body, 0o644); err != nil {
		return nil, fmt.Errorf("write submission %s: %w", id, err)
	}
	if err := os.Rename(temp, d.readyPath(id)); err != nil {
		_ = os.Remove(temp)
		return nil, fmt.Errorf("commit submission %s: %w", id, err)
	}

	return &Receipt{ID: id, Size: len(body)}, nil
}

// freshID generates an identifier not currently present in any of the four
// spool locations, regenerating on collision up to maxIDAttempts.
func (d *Dir) freshID() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := newSubmissionID()
		if d.exists(d.tempPath(id)) || d.exists(d.readyPath(id)) ||
			d.exists(d.archivedPath(id)) || d.exists(d.failedPath(id)) {
			continue
		}
		return id, nil
	}
	return "", errors.New("could not generate an unused submission id")
}

// validateJSON checks that body is exactly one well-formed JSON value.
func validateJSON(body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if err := dec.Decode(&v); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// CountJSONFiles counts entries in the spool root with a .json extension.
// The scan is non-recursive and filters by extension only, so temp files
// and the archive/failed subdirectories are excluded but the count remains
// a coarse gauge, not an exact inventory. Scan errors report zero.
func (d *Dir) CountJSONFiles() int {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			n++
		}
	}
	return n
}
