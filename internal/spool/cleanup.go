// cleanup.go - Sweep of orphaned in-progress files.
//
// A client that disconnects mid-upload leaves a submission-<id>.json.temp
// file with no owner; nothing ever renames it. The sweep removes temp files
// older than a cutoff and never touches final, archived or failed files.
package spool

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SweepTemp removes temp files in the spool root whose modification time is
// older than maxAge. It returns the number of files removed. Files younger
// than maxAge are left alone since they may belong to an in-flight upload.
func (d *Dir) SweepTemp(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "submission-") || !strings.HasSuffix(name, ".json.temp") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(d.root, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}
