// Package reporter drives the SIGHUP-triggered statistics dump, mirroring
// the signal-handling thread in the original crackserver: a dedicated
// goroutine blocks on signal.Notify and, on each SIGHUP, writes a
// human-readable snapshot to the diagnostic stream and forwards the same
// snapshot to any registered subscriber (the admin websocket hub).
package reporter

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/arbur/crackserver/internal/diagnostic"
	"github.com/arbur/crackserver/internal/stats"
)

// Reporter owns the SIGHUP handling goroutine for the lifetime of a
// server process.
type Reporter struct {
	stats  *stats.Registry
	stream *diagnostic.Stream

	mu          sync.Mutex
	subscribers []chan<- stats.Snapshot
}

// New creates a Reporter. Run must be called to start handling signals.
func New(reg *stats.Registry, stream *diagnostic.Stream) *Reporter {
	return &Reporter{stats: reg, stream: stream}
}

// Subscribe registers ch to receive a copy of every snapshot dumped,
// used by the admin websocket hub to push live updates. The send is
// best-effort: a subscriber that isn't reading the channel never blocks
// the reporter.
func (r *Reporter) Subscribe(ch chan<- stats.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, ch)
}

// Unsubscribe removes a previously subscribed channel. Callers should
// unsubscribe when their consumer goes away, or the reporter will keep
// trying (and failing) to deliver to it forever.
func (r *Reporter) Unsubscribe(ch chan<- stats.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subscribers {
		if sub == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			return
		}
	}
}

// Run blocks handling SIGHUP until ctx is cancelled. It is meant to run
// in its own goroutine for the life of the process.
func (r *Reporter) Run(ctx context.Context) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			r.dump()
		}
	}
}

// Dump performs one stats dump immediately, independent of signal
// delivery. Exported so tests and the admin HTTP surface can request an
// on-demand report without raising a real signal.
func (r *Reporter) Dump() {
	r.dump()
}

func (r *Reporter) dump() {
	snap := r.stats.Snapshot()
	r.stream.Printf(
		"Connected clients: %d\n"+
			"Completed clients: %d\n"+
			"Crack requests: %d\n"+
			"Failed crack requests: %d\n"+
			"Successful crack requests: %d\n"+
			"Crypt requests: %d\n"+
			"crypt()/crypt_r() calls: %d\n",
		snap.Connected, snap.Completed,
		snap.Cracks, snap.FailedCracks, snap.SuccessCracks,
		snap.Crypts, snap.CryptCalls,
	)

	r.mu.Lock()
	subs := append([]chan<- stats.Snapshot(nil), r.subscribers...)
	r.mu.Unlock()
	for _, sub := range subs {
		select {
		case sub <- snap:
		default:
		}
	}
}
