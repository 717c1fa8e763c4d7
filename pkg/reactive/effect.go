package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect. It runs once at creation and re-runs
// whenever a signal or memo it read during its last run changes. The body
// may return a Cleanup that runs before each re-run and on disposal.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*node
	sourcesMu sync.Mutex

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

// NewEffect creates and immediately runs an effect within the current
// owner. The owner disposes the effect when it is itself disposed; a
// disposed owner's pending effects are dropped, never run.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: currentOwner(),
	}
	if e.owner != nil {
		e.owner.registerEffect(e)
	}
	e.run()
	return e
}

// MarkDirty schedules the effect for re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		if e.owner != nil {
			e.owner.scheduleEffect(e)
		} else {
			// No owner: re-run inline. Used by tests and detached effects.
			e.run()
		}
	}
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// addSource implements dependent.
func (e *Effect) addSource(src *node) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	for _, s := range e.sources {
		if s == src {
			return
		}
	}
	e.sources = append(e.sources, src)
}

// run executes the effect body, re-collecting dependencies from scratch.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := swapListener(e)
	e.cleanup = e.fn()
	swapListener(old)
}

// dispose tears the effect down: runs its cleanup and unsubscribes from
// every source. Idempotent.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, src := range e.sources {
		src.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// OnCleanup registers fn to run when the current owner is disposed.
// No-op outside an owner context.
func OnCleanup(fn func()) {
	if o := currentOwner(); o != nil {
		o.OnCleanup(fn)
	}
}
