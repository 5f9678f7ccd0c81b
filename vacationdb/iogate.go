package vacationdb

import "sync"

// Operation names the background task currently owning the I/O gate.
type Operation int

const (
	OpNone Operation = iota
	OpLoad
	OpSave
)

// gate is the coarse mutual-exclusion mechanism guarding persistence
// operations, ported from db_impl's io_lock/io_percentage/io_curop triple
// (original_source/include/libvacationdb/database_impl.hpp). It allows at
// most one load or save in flight; every other API call suspends at
// BlockIfLocked until that task finishes, then clears the lock itself —
// clearing happens in BlockIfLocked, not when the background task
// completes, exactly as in the source implementation.
type gate struct {
	mu        sync.Mutex
	locked    bool
	progress  float64
	operation Operation
	done      chan struct{}
}

func newGate() *gate {
	return &gate{}
}

// BlockIfLocked suspends the caller until any in-flight background load
// or save completes, then clears the lock. A call made while nothing is
// locked returns immediately.
func (g *gate) BlockIfLocked() {
	g.mu.Lock()
	if !g.locked {
		g.mu.Unlock()
		return
	}
	done := g.done
	g.mu.Unlock()

	<-done

	g.mu.Lock()
	g.locked = false
	g.mu.Unlock()
}

// beginAsync marks the gate locked for the given operation and returns a
// finish closure the caller must invoke exactly once when the background
// work completes.
func (g *gate) beginAsync(op Operation) func() {
	g.mu.Lock()
	g.locked = true
	g.operation = op
	g.progress = 0
	done := make(chan struct{})
	g.done = done
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		g.operation = OpNone
		g.progress = 1
		g.mu.Unlock()
		close(done)
	}
}

// setProgress records coarse progress (0..1) for an in-flight operation.
func (g *gate) setProgress(p float64) {
	g.mu.Lock()
	g.progress = p
	g.mu.Unlock()
}

// Status reports the operation currently reported by the gate and its
// progress, without blocking.
func (g *gate) Status() (Operation, float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.operation, g.progress
}

func (g *gate) reset() {
	g.mu.Lock()
	g.locked = false
	g.progress = 0
	g.operation = OpNone
	g.done = nil
	g.mu.Unlock()
}
