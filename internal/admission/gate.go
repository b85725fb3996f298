// Package admission implements the connection-admission gate: a counting
// semaphore bounding how many client sessions the server serves at once.
package admission

import "context"

// Gate bounds concurrent sessions. The listener acquires a permit before
// calling Accept so backpressure is applied at the kernel's accept queue;
// the session handler releases its permit exactly once on termination.
type Gate struct {
	permits chan struct{}
}

// New creates a Gate. max == 0 means unbounded: Acquire never blocks.
func New(max int) *Gate {
	if max == 0 {
		return &Gate{}
	}
	g := &Gate{permits: make(chan struct{}, max)}
	for i := 0; i < max; i++ {
		g.permits <- struct{}{}
	}
	return g
}

// Acquire blocks until a permit is available or ctx is done. An unbounded
// Gate always returns immediately with a nil error.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.permits == nil {
		return nil
	}
	select {
	case <-g.permits:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the gate. It must be called exactly once
// per successful Acquire. Releasing on an unbounded Gate is a no-op.
func (g *Gate) Release() {
	if g.permits == nil {
		return
	}
	g.permits <- struct{}{}
}

// InUse reports how many permits are currently checked out. It is
// intended for tests and diagnostics only.
func (g *Gate) InUse() int {
	if g.permits == nil {
		return 0
	}
	return cap(g.permits) - len(g.permits)
}
