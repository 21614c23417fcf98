package session

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// seqCounter numbers sessions within the process, handy for log ordering
var seqCounter uint64

// Session identifies one load of one source through the pipeline
type Session struct {
	ID        string    // UUID, used to correlate lifecycle events and spans
	Seq       uint64    // process-local sequence number
	Source    string    // file path or logical name of the input
	Active    bool      // whether the load is still running
	StartTime time.Time // when the load began
}

// New starts a session for the given source
func New(source string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&seqCounter, 1),
		Source:    source,
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the session as finished
func (s *Session) Close() {
	s.Active = false
}

// Elapsed is the time since the session began
func (s *Session) Elapsed() time.Duration {
	return time.Since(s.StartTime)
}
