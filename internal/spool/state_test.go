package spool

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"abc123XYZ", true},
		{"0", true},
		{"", false},
		{"has-dash", false},
		{"has space", false},
		{"../../etc/passwd", false},
		{"id.json", false},
		{"tab\tchar", false},
		{"unicodeé", false},
	}

	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.valid {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestLookup_InvalidIDNeverTouchesFilesystem(t *testing.T) {
	probed := false
	d := &Dir{root: "/spool", exists: func(string) bool {
		probed = true
		return false
	}}

	for _, id := range []string{"", "../escape", "a/b"} {
		_, err := d.Lookup(id)
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("Lookup(%q): expected ErrInvalidIdentifier, got %v", id, err)
		}
	}
	if probed {
		t.Errorf("Lookup probed the filesystem for an invalid id")
	}
}

func TestLookup_ProbeOrder(t *testing.T) {
	const id = "abc123"

	tests := []struct {
		name    string
		present map[string]bool
		want    State
	}{
		{"nothing", nil, StateNotFound},
		{"temp only", map[string]bool{"/spool/submission-abc123.json.temp": true}, StateInProgress},
		{"ready only", map[string]bool{"/spool/submission-abc123.json": true}, StateReady},
		{"archived only", map[string]bool{"/spool/archive/submission-abc123.json": true}, StateArchived},
		{"failed only", map[string]bool{"/spool/failed/submission-abc123.json": true}, StateFailed},
		{
			// Temp wins over ready if both are briefly visible.
			"temp and ready",
			map[string]bool{
				"/spool/submission-abc123.json.temp": true,
				"/spool/submission-abc123.json":      true,
			},
			StateInProgress,
		},
		{
			"ready and archived",
			map[string]bool{
				"/spool/submission-abc123.json":         true,
				"/spool/archive/submission-abc123.json": true,
			},
			StateReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Dir{root: "/spool", exists: func(path string) bool {
				return tt.present[path]
			}}
			got, err := d.Lookup(id)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLookup_OnRealFilesystem(t *testing.T) {
	root := t.TempDir()
	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const id = "realfs01"
	if got, _ := d.Lookup(id); got != StateNotFound {
		t.Errorf("Expected StateNotFound before any file exists, got %v", got)
	}

	for _, dir := range []string{"archive", "failed"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}

	if err := os.WriteFile(filepath.Join(root, "failed", "submission-"+id+".json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got, _ := d.Lookup(id); got != StateFailed {
		t.Errorf("Expected StateFailed, got %v", got)
	}

	// Repeated lookups with an unchanged filesystem are identical.
	for i := 0; i < 3; i++ {
		if got, _ := d.Lookup(id); got != StateFailed {
			t.Errorf("Lookup not idempotent: got %v on call %d", got, i)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateNotFound, "notfound"},
		{StateInProgress, "inprogress"},
		{StateReady, "ready"},
		{StateArchived, "archived"},
		{StateFailed, "failed"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
