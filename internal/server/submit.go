// submit.go - POST /submit: durable intake of one JSON submission.
package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"submission-spool/internal/spool"
)

// handleSubmit reads the request body, hands it to the spool and answers
// with the submission's identifier. Malformed JSON is rejected before any
// file is touched and never consumes an identifier. A storage failure is
// isolated to this one request: the client gets a 500 and the process
// keeps serving everyone else.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rid := RequestIDFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			log.Printf("rid=%s msg=submission_too_large limit=%d", rid, s.maxBodyBytes)
			writeAnswer(w, http.StatusRequestEntityTooLarge, "0", "error",
				fmt.Sprintf("Submission exceeds the %d byte limit", s.maxBodyBytes))
			return
		}
		log.Printf("rid=%s msg=body_read_failed err=%v", rid, err)
		writeAnswer(w, http.StatusBadRequest, "0", "error", "Could not read request body")
		return
	}

	receipt, err := s.spool.Accept(body)
	if err != nil {
		var verr *spool.ValidationError
		if errors.As(err, &verr) {
			log.Printf("rid=%s msg=submission_rejected err=%v", rid, verr)
			writeAnswer(w, http.StatusBadRequest, "0", "error", verr.Error())
			return
		}
		// Storage failure. Paths go to the log, not to the client.
		log.Printf("rid=%s msg=spool_write_failed err=%v", rid, err)
		s.metrics.RecordError()
		writeAnswer(w, http.StatusInternalServerError, "0", "error", "Could not persist submission")
		return
	}

	s.metrics.RecordSubmission(receipt.Size)
	log.Printf("rid=%s msg=submission_received id=%s size=%d", rid, receipt.ID, receipt.Size)
	writeAnswer(w, http.StatusOK, receipt.ID, "ok",
		fmt.Sprintf("Received submission %s with size %d bytes", receipt.ID, receipt.Size))
}
