package engine

import "sync"

// Guarded serializes access to an Engine with a mutex.
//
// Thread-safety: all methods are safe for concurrent use. Observers
// registered on the wrapped engine run while the lock is held.
type Guarded struct {
	mu sync.Mutex
	e  *Engine
}

// NewGuarded wraps e. The caller must not use e directly afterwards.
func NewGuarded(e *Engine) *Guarded {
	return &Guarded{e: e}
}

// Apply runs c under the lock.
func (g *Guarded) Apply(c Command) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.e.Apply(c)
}

// Snapshot returns the display and flag as one consistent read.
func (g *Guarded) Snapshot() (display string, resultShown bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.e.Display(), g.e.ResultShown()
}
