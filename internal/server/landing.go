// landing.go - GET /: human-facing landing page.
package server

import (
	"net/http"
	"os"
)

const fallbackLandingHTML = `<!DOCTYPE html>
<html>
<head><title>Submission Spool</title></head>
<body>
<h1>Submission Spool</h1>
<p>POST JSON payloads to /submit with a bearer token; poll /status?id=&lt;id&gt; for processing state.</p>
</body>
</html>
`

// handleLanding serves an operator-provided HTML file when one is
// configured, falling back to the embedded page. The file is re-read per
// request so it can be swapped without a restart.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; anything but the root itself is unknown.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	html := fallbackLandingHTML
	if s.indexHTMLPath != "" {
		if data, err := os.ReadFile(s.indexHTMLPath); err == nil {
			html = string(data)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}
