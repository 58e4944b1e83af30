// prometheus.go - Text exposition for the /metrics endpoint.
//
// The line shape (one HELP, one TYPE, one value line per metric) is part
// of the external contract; monitoring scrapers parse it as-is.
package server

import (
	"fmt"
	"net/http"
	"strings"
)

// handleMetrics renders the counter aggregate plus two gauges: a live
// count of .json files in the spool root and the process uptime. The file
// count is a fresh directory scan on every scrape, independent of the
// counters, and only approximate (see spool.CountJSONFiles).
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var b strings.Builder

	b.WriteString("# HELP spoold_submissions_total Total number of submissions received\n")
	b.WriteString("# TYPE spoold_submissions_total counter\n")
	fmt.Fprintf(&b, "spoold_submissions_total %d\n", s.metrics.Submissions())

	b.WriteString("# HELP spoold_submission_size_total Total size of all submissions received in bytes\n")
	b.WriteString("# TYPE spoold_submission_size_total counter\n")
	fmt.Fprintf(&b, "spoold_submission_size_total %d\n", s.metrics.SubmissionBytes())

	b.WriteString("# HELP spoold_errors_total Total number of errors encountered\n")
	b.WriteString("# TYPE spoold_errors_total counter\n")
	fmt.Fprintf(&b, "spoold_errors_total %d\n", s.metrics.Errors())

	b.WriteString("# HELP spoold_json_files_total Total number of JSON files in the spool directory\n")
	b.WriteString("# TYPE spoold_json_files_total gauge\n")
	fmt.Fprintf(&b, "spoold_json_files_total %d\n", s.spool.CountJSONFiles())

	b.WriteString("# HELP spoold_uptime_seconds Uptime of the server in seconds\n")
	b.WriteString("# TYPE spoold_uptime_seconds gauge\n")
	fmt.Fprintf(&b, "spoold_uptime_seconds %d\n", int64(s.metrics.Uptime().Seconds()))

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}
