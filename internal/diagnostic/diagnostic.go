// Package diagnostic writes the two protocol-mandated pieces of output
// tests scrape verbatim: the startup port announcement and the
// statistics dump. Both go to stderr unconditionally; when a rotating
// log file is configured, the same bytes are additionally teed there.
// This is deliberately independent of the leveled operational logger
// (internal/logging): the wire format here is exact and undecorated.
package diagnostic

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Stream is a raw, line-oriented writer safe for concurrent use by the
// listener (the startup port line) and the signal reporter (stats
// dumps), which may both write at arbitrary times.
type Stream struct {
	mu      sync.Mutex
	writers []io.Writer
}

// NewStderr creates a Stream that writes only to os.Stderr.
func NewStderr() *Stream {
	return &Stream{writers: []io.Writer{os.Stderr}}
}

// AddWriter adds an additional destination, such as a log rotator, that
// receives a copy of everything written through the Stream.
func (s *Stream) AddWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers = append(s.writers, w)
}

// Printf writes format/args, exactly as given, to every configured
// writer. Callers supply their own trailing newlines so multi-line
// reports land as a single atomic write per destination.
func (s *Stream) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.writers {
		io.WriteString(w, msg)
	}
}
