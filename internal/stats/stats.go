// Package stats implements the server's statistics registry: seven
// monotonic counters and gauges, serialized behind a single mutex exactly
// as the cracking server's reference design requires, with an optional
// Prometheus mirror for the admin surface.
package stats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Snapshot is a coherent, point-in-time copy of every statistic.
type Snapshot struct {
	Connected     uint32
	Completed     uint32
	Cracks        uint32
	FailedCracks  uint32
	SuccessCracks uint32
	Crypts        uint32
	CryptCalls    uint32
}

// Registry holds the live counters behind a single mutex. The zero value
// is not usable; construct one with New.
type Registry struct {
	mu sync.Mutex
	s  Snapshot

	metrics *promMirror
}

// New creates an empty Registry. If reg is non-nil, every mutation is
// additionally mirrored into Prometheus series registered against reg;
// pass nil to skip Prometheus entirely.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{}
	if reg != nil {
		r.metrics = newPromMirror(reg)
	}
	return r
}

// OnConnect records a newly accepted session.
func (r *Registry) OnConnect() {
	r.mu.Lock()
	r.s.Connected++
	r.mirrorLocked()
	r.mu.Unlock()
}

// OnDisconnect records a session ending.
func (r *Registry) OnDisconnect() {
	r.mu.Lock()
	r.s.Connected--
	r.s.Completed++
	r.mirrorLocked()
	r.mu.Unlock()
}

// OnCrackRequest records that a crack command was accepted for
// processing, whether or not it will eventually succeed.
func (r *Registry) OnCrackRequest() {
	r.mu.Lock()
	r.s.Cracks++
	r.mirrorLocked()
	r.mu.Unlock()
}

// OnCrackSuccess records that a crack command found a matching word.
func (r *Registry) OnCrackSuccess() {
	r.mu.Lock()
	r.s.SuccessCracks++
	r.mirrorLocked()
	r.mu.Unlock()
}

// OnCrackFail records that a crack command ended without a match: either
// its search found nothing or the command failed validation.
func (r *Registry) OnCrackFail() {
	r.mu.Lock()
	r.s.FailedCracks++
	r.mirrorLocked()
	r.mu.Unlock()
}

// OnCryptRequest records an accepted crypt command.
func (r *Registry) OnCryptRequest() {
	r.mu.Lock()
	r.s.Crypts++
	r.mirrorLocked()
	r.mu.Unlock()
}

// AddCryptCalls adds k to the running count of hash-primitive
// invocations. Called once per valid crypt command (k=1) and once per
// crack request (k=the summed call counts of all its workers); crack
// workers do not add their counts individually.
func (r *Registry) AddCryptCalls(k uint32) {
	if k == 0 {
		return
	}
	r.mu.Lock()
	r.s.CryptCalls += k
	r.mirrorLocked()
	r.mu.Unlock()
}

// Snapshot returns a coherent copy of every statistic.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.s
}

// mirrorLocked pushes the current snapshot into Prometheus. Callers must
// hold r.mu.
func (r *Registry) mirrorLocked() {
	if r.metrics == nil {
		return
	}
	r.metrics.set(r.s)
}
