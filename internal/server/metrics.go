package server

import (
	"sync/atomic"
	"time"
)

// Metrics is the counter aggregate shared by all request handlers. It is
// created once at process start, threaded through the Server rather than
// held in a package global, never persisted, and zeroed by a restart. The
// counters are monotonic accumulators with no cross-counter snapshot
// guarantee, so relaxed atomic increments are all they need.
type Metrics struct {
	submissionsTotal     atomic.Uint64
	submissionBytesTotal atomic.Uint64
	errorsTotal          atomic.Uint64

	start time.Time
}

// NewMetrics returns a zeroed aggregate with the uptime clock started.
func NewMetrics() *Metrics {
	return &Metrics{start: time.Now()}
}

// RecordSubmission counts one accepted submission of the given byte size.
func (m *Metrics) RecordSubmission(size int) {
	m.submissionsTotal.Add(1)
	m.submissionBytesTotal.Add(uint64(size))
}

// RecordError counts one failed request (auth rejection or storage failure).
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

func (m *Metrics) Submissions() uint64 {
	return m.submissionsTotal.Load()
}

func (m *Metrics) SubmissionBytes() uint64 {
	return m.submissionBytesTotal.Load()
}

func (m *Metrics) Errors() uint64 {
	return m.errorsTotal.Load()
}

// Uptime returns the wall-clock time elapsed since the aggregate was created.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.start)
}
