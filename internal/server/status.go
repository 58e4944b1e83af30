// status.go - GET /status?id=<id>: where is a submission right now.
package server

import (
	"errors"
	"log"
	"net/http"

	"submission-spool/internal/spool"
)

// handleStatus resolves a submission's state from its spool location. The
// id is validated before any filesystem probe since it is interpolated
// into a path. Lookups are read-only.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeAnswer(w, http.StatusBadRequest, "0", "error", "Empty id")
		return
	}

	state, err := s.spool.Lookup(id)
	if err != nil {
		if errors.Is(err, spool.ErrInvalidIdentifier) {
			writeAnswer(w, http.StatusBadRequest, "0", "error", "Invalid id")
			return
		}
		rid := RequestIDFromContext(r.Context())
		log.Printf("rid=%s msg=status_lookup_failed id=%s err=%v", rid, id, err)
		writeAnswer(w, http.StatusInternalServerError, "0", "error", "Could not resolve submission state")
		return
	}

	switch state {
	case spool.StateInProgress:
		writeAnswer(w, http.StatusOK, id, "inprogress", "File still in progress")
	case spool.StateReady:
		writeAnswer(w, http.StatusOK, id, "ready", "File waiting for processing")
	case spool.StateArchived:
		writeAnswer(w, http.StatusOK, id, "processed", "File archived")
	case spool.StateFailed:
		writeAnswer(w, http.StatusOK, id, "failed", "File failed to pass validation")
	default:
		writeAnswer(w, http.StatusNotFound, id, "notfound", "File not found")
	}
}
