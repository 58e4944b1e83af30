package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetrics_Exposition(t *testing.T) {
	s, _ := newOpenServer(t)

	// Two accepted submissions and one recorded error.
	for _, body := range []string{`{"a":1}`, `{"b":22}`} {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("submit: expected 200, got %d", rr.Code)
		}
	}
	s.Metrics().RecordError()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain content type, got %q", ct)
	}

	body := rr.Body.String()
	wantLines := []string{
		"# HELP spoold_submissions_total Total number of submissions received",
		"# TYPE spoold_submissions_total counter",
		"spoold_submissions_total 2",
		"# TYPE spoold_submission_size_total counter",
		"spoold_submission_size_total 15",
		"# TYPE spoold_errors_total counter",
		"spoold_errors_total 1",
		"# TYPE spoold_json_files_total gauge",
		"spoold_json_files_total 2",
		"# TYPE spoold_uptime_seconds gauge",
	}
	for _, line := range wantLines {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("Exposition missing line %q\n%s", line, body)
		}
	}
}

func TestMetrics_NoAuthRequired(t *testing.T) {
	s := newTestServer(t, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected /metrics to be open, got %d", rr.Code)
	}
}

func TestMetrics_CountersAreMonotonic(t *testing.T) {
	m := NewMetrics()
	m.RecordSubmission(10)
	m.RecordSubmission(5)
	m.RecordError()

	if m.Submissions() != 2 {
		t.Errorf("Expected 2 submissions, got %d", m.Submissions())
	}
	if m.SubmissionBytes() != 15 {
		t.Errorf("Expected 15 bytes, got %d", m.SubmissionBytes())
	}
	if m.Errors() != 1 {
		t.Errorf("Expected 1 error, got %d", m.Errors())
	}
}
