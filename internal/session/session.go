// Package session implements the per-connection lifecycle: a read
// goroutine feeding a dispatch goroutine over a channel, coordinated by
// a context the listener cancels at shutdown — the same read/process/
// run split the reference pool client uses, simplified for a strict
// one-line-request/one-line-response grammar instead of an async
// notification stream.
package session

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/Eacred/slog"
	"github.com/davecgh/go-spew/spew"

	"github.com/arbur/crackserver/internal/dictionary"
	"github.com/arbur/crackserver/internal/logging"
	"github.com/arbur/crackserver/internal/protocol"
	"github.com/arbur/crackserver/internal/stats"
)

type line struct {
	text string
}

// Session owns one accepted connection for its entire lifetime.
type Session struct {
	id   string
	conn net.Conn
	dict *dictionary.Dictionary
	reg  *stats.Registry

	readCh chan line
	wg     sync.WaitGroup
}

// New creates a Session for conn. dict and reg are shared across every
// concurrently running session.
func New(conn net.Conn, dict *dictionary.Dictionary, reg *stats.Registry) *Session {
	return &Session{
		id:     conn.RemoteAddr().String(),
		conn:   conn,
		dict:   dict,
		reg:    reg,
		readCh: make(chan line),
	}
}

// Serve runs the session to completion: it blocks until the client
// disconnects, a protocol error terminates the connection, or ctx is
// cancelled. It records the connect/disconnect pair exactly once and
// always closes conn before returning.
func (s *Session) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	// Closing the connection on cancellation unblocks read, which would
	// otherwise stay parked in ReadString until the peer sends or hangs up.
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	s.reg.OnConnect()
	defer s.reg.OnDisconnect()

	s.wg.Add(2)
	go s.read(ctx, cancel)
	go s.dispatch(ctx)
	s.wg.Wait()

	logging.Log.Tracef("%s: connection terminated", s.id)
}

// read pulls newline-delimited commands off the connection and forwards
// them to dispatch. It cancels the session context on any read error,
// including a clean client-initiated EOF. It never imposes an idle
// deadline: a crack request runs to completion or until the first
// match, and the admission gate is the only backpressure mechanism.
func (s *Session) read(ctx context.Context, cancel context.CancelFunc) {
	defer s.wg.Done()
	r := bufio.NewReader(s.conn)
	for {
		text, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				logging.Log.Debugf("%s: read error: %v", s.id, err)
			}
			cancel()
			return
		}
		select {
		case s.readCh <- line{text: strings.TrimRight(text, "\r\n")}:
		case <-ctx.Done():
			return
		}
	}
}

// dispatch consumes lines from read and writes back exactly one
// response per line until ctx is cancelled.
func (s *Session) dispatch(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ln := <-s.readCh:
			out := protocol.Dispatch(ln.text, s.dict, s.reg)
			if out.Response == protocol.Invalid && logging.Log.Level() <= slog.LevelTrace {
				logging.Log.Tracef("%s: rejected command:\n%s", s.id, spew.Sdump(ln.text))
			}
			if _, err := s.conn.Write([]byte(out.Response + "\n")); err != nil {
				logging.Log.Debugf("%s: write error: %v", s.id, err)
				return
			}
		}
	}
}

