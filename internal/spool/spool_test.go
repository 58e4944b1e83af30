package spool

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatalf("Expected error for missing directory")
	}
}

func TestNew_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain-file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := New(file)
	if err == nil {
		t.Fatalf("Expected error for non-directory spool root")
	}
}

func TestAccept_RoundTrip(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	body := []byte(`{"a":1}`)
	r, err := d.Accept(body)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if len(r.ID) != 32 || !ValidID(r.ID) {
		t.Errorf("Expected 32-char alphanumeric id, got %q", r.ID)
	}
	if r.Size != len(body) {
		t.Errorf("Expected size %d, got %d", len(body), r.Size)
	}

	// The final file must hold the exact client bytes.
	got, err := os.ReadFile(d.readyPath(r.ID))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Persisted bytes differ: got %q want %q", got, body)
	}

	// No temp file may remain once Accept has returned.
	if _, err := os.Stat(d.tempPath(r.ID)); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be gone, stat err: %v", err)
	}

	state, err := d.Lookup(r.ID)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if state != StateReady {
		t.Errorf("Expected StateReady immediately after Accept, got %v", state)
	}
}

func TestAccept_PreservesBytesVerbatim(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Odd but valid JSON formatting must survive untouched.
	body := []byte("  {\n\t\"key\" :  [1,  2,3]\n}\n")
	r, err := d.Accept(body)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	got, err := os.ReadFile(d.readyPath(r.ID))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Expected verbatim bytes, got %q want %q", got, body)
	}
}

func TestAccept_MalformedJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json at all", "not json"},
		{"empty body", ""},
		{"truncated object", `{"a":`},
		{"trailing data", `{"a":1} extra`},
		{"two values", `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			d, err := New(root)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			_, err = d.Accept([]byte(tt.body))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if verr.Error() == "" {
				t.Errorf("Expected a parser message in the error")
			}

			// The spool directory must be untouched.
			entries, err := os.ReadDir(root)
			if err != nil {
				t.Fatalf("ReadDir: %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("Expected empty spool after rejected body, found %d entries", len(entries))
			}
		})
	}
}

func TestAccept_RetriesOnIDCollision(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// First candidate collides, second is free.
	calls := 0
	real := d.exists
	d.exists = func(path string) bool {
		calls++
		if calls <= 4 {
			return true
		}
		return real(path)
	}

	r, err := d.Accept([]byte(`{}`))
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if r.ID == "" {
		t.Errorf("Expected an id after collision retry")
	}
}

func TestAccept_GivesUpAfterRepeatedCollisions(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.exists = func(string) bool { return true }

	_, err = d.Accept([]byte(`{}`))
	if err == nil {
		t.Fatalf("Expected error when every candidate id collides")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Errorf("Collision exhaustion must not be a validation error")
	}
}

func TestCountJSONFiles(t *testing.T) {
	root := t.TempDir()
	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	files := []string{
		"submission-aaa.json",
		"submission-bbb.json",
		"submission-ccc.json.temp",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "archive"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "archive", "submission-ddd.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// Only root-level .json entries count: temp files and archived files do not.
	if n := d.CountJSONFiles(); n != 2 {
		t.Errorf("Expected 2 json files, got %d", n)
	}
}
