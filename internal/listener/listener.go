// Package listener implements the accept loop: bind a TCP socket
// (ephemeral when port is 0), announce the bound port on the diagnostic
// stream exactly once as the original accept loop's getsockname report
// does, then spawn one session per accepted connection gated by the
// admission semaphore.
package listener

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/arbur/crackserver/internal/admission"
	"github.com/arbur/crackserver/internal/dictionary"
	"github.com/arbur/crackserver/internal/diagnostic"
	"github.com/arbur/crackserver/internal/logging"
	"github.com/arbur/crackserver/internal/session"
	"github.com/arbur/crackserver/internal/stats"
)

// Listener owns the bound socket and the set of currently running
// sessions.
type Listener struct {
	ln   net.Listener
	gate *admission.Gate
	dict *dictionary.Dictionary
	reg  *stats.Registry
	out  *diagnostic.Stream

	wg sync.WaitGroup
}

// Bind opens a TCP listener on port (0 selects an ephemeral port) and
// writes the bound port number to out, matching the startup line every
// client and test harness depends on.
func Bind(port int, maxConn int, dict *dictionary.Dictionary, reg *stats.Registry, out *diagnostic.Stream) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	boundPort := ln.Addr().(*net.TCPAddr).Port
	out.Printf("Server listening on port %d\n", boundPort)

	return &Listener{
		ln:   ln,
		gate: admission.New(maxConn),
		dict: dict,
		reg:  reg,
		out:  out,
	}, nil
}

// Port reports the bound port, useful when Bind was called with 0.
func (l *Listener) Port() int {
	return l.ln.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until ctx is cancelled or the listener is
// closed, blocking on the admission gate before each Accept so the
// number of concurrently active sessions never exceeds maxConn. It
// returns once every in-flight session has finished.
func (l *Listener) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.ln.Close()
	}()

	for {
		if err := l.gate.Acquire(ctx); err != nil {
			l.wg.Wait()
			return nil
		}

		conn, err := l.ln.Accept()
		if err != nil {
			l.gate.Release()
			select {
			case <-ctx.Done():
				l.wg.Wait()
				return nil
			default:
				logging.Log.Errorf("accept error: %v", err)
				l.wg.Wait()
				return err
			}
		}

		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			defer l.gate.Release()
			session.New(conn, l.dict, l.reg).Serve(ctx)
		}()
	}
}

// Close closes the underlying socket without waiting for sessions to
// finish; used by tests that only care about releasing the port.
func (l *Listener) Close() error {
	return l.ln.Close()
}
