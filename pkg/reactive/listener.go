package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes:
// memos invalidate their cache, effects schedule a re-run, and component
// instances schedule a re-render.
type Listener interface {
	// MarkDirty notifies the listener that a dependency changed.
	MarkDirty()

	// ID returns a unique identifier, used to deduplicate notifications.
	ID() uint64
}

// Cleanup is returned by an effect body and runs before the effect re-runs
// and when the effect is disposed.
type Cleanup func()

// idCounter is the source of unique IDs for all reactive primitives.
var idCounter atomic.Uint64

// nextID returns the next unique primitive ID. IDs are never reused.
func nextID() uint64 {
	return idCounter.Add(1)
}
