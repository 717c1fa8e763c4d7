package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached derived computation. It tracks the signals and memos it
// reads automatically; when any of them change it is invalidated and
// recomputes lazily on the next Get. Memos can themselves be subscribed
// to, so derivations chain.
type Memo[T any] struct {
	node

	compute func() T

	value   T
	valueMu sync.RWMutex

	// valid is false when the cached value is stale.
	valid atomic.Bool

	sources   []*node
	sourcesMu sync.Mutex

	equal func(T, T) bool

	// computing guards against recursion through circular dependencies.
	computing atomic.Bool
}

// NewMemo creates a memo over compute. The computation runs lazily on the
// first Get, not at creation.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		node:    node{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if a dependency changed, and
// subscribes the current listener.
func (m *Memo[T]) Get() T {
	m.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the value without subscribing. Still recomputes if stale.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// MarkDirty invalidates the cached value and propagates to subscribers.
// Implements Listener.
func (m *Memo[T]) MarkDirty() {
	if m.valid.CompareAndSwap(true, false) {
		m.notify()
	}
}

// ID returns the unique identifier for this memo. Implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.node.id
}

// addSource implements dependent.
func (m *Memo[T]) addSource(src *node) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	for _, s := range m.sources {
		if s == src {
			return
		}
	}
	m.sources = append(m.sources, src)
}

// WithEquals configures a custom equality function and returns the memo.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// recompute re-runs the computation, re-collecting dependencies from
// scratch so stale subscriptions do not linger.
func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		// Circular dependency; keep the stale value.
		return
	}
	defer m.computing.Store(false)

	m.sourcesMu.Lock()
	for _, src := range m.sources {
		src.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	old := swapListener(m)
	next := m.compute()
	swapListener(old)

	m.valueMu.Lock()
	if !m.equals(m.value, next) {
		m.value = next
	}
	m.valueMu.Unlock()

	m.valid.Store(true)
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

var _ dependent = (*Memo[int])(nil)
