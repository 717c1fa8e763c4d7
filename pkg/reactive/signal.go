package reactive

import (
	"reflect"
	"sync"
)

// node provides type-erased subscriber management, embedded in Signal[T]
// and Memo[T].
type node struct {
	id uint64

	subs   []Listener
	subsMu sync.RWMutex
}

// subscribe adds l to the subscriber list, deduplicating by listener ID.
func (n *node) subscribe(l Listener) {
	if l == nil {
		return
	}

	n.subsMu.Lock()
	defer n.subsMu.Unlock()

	lid := l.ID()
	for _, existing := range n.subs {
		if existing.ID() == lid {
			return
		}
	}
	n.subs = append(n.subs, l)
}

// unsubscribe removes l from the subscriber list.
func (n *node) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	n.subsMu.Lock()
	defer n.subsMu.Unlock()

	lid := l.ID()
	for i, existing := range n.subs {
		if existing.ID() == lid {
			n.subs[i] = n.subs[len(n.subs)-1]
			n.subs = n.subs[:len(n.subs)-1]
			return
		}
	}
}

// notify marks every subscriber dirty, or queues them if a batch is open.
// Subscribers are copied before notification so no lock is held during
// MarkDirty.
func (n *node) notify() {
	n.subsMu.RLock()
	subs := make([]Listener, len(n.subs))
	copy(subs, n.subs)
	n.subsMu.RUnlock()

	ctx := currentContext()
	if ctx.batchDepth > 0 {
		ctx.pending = append(ctx.pending, subs...)
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// track subscribes the current listener to this node and registers the
// node as a source for cleanup on re-run.
func (n *node) track() {
	l := currentListener()
	if l == nil {
		return
	}
	n.subscribe(l)
	if d, ok := l.(dependent); ok {
		d.addSource(n)
	}
}

// dependent is implemented by listeners that track their sources so they
// can unsubscribe before re-running (memos and effects).
type dependent interface {
	Listener
	addSource(*node)
}

// Signal is a reactive value container. Reading during a tracked context
// subscribes the current listener; writing notifies subscribers when the
// value changes.
type Signal[T any] struct {
	node

	value T
	mu    sync.RWMutex

	// equal overrides the change check. Nil means default equality.
	equal func(T, T) bool
}

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		node:  node{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock to avoid lock ordering issues.
	s.track()

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers if it differs from the
// current value under the signal's equality function.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Update atomically transforms the current value with fn.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// WithEquals configures a custom equality function and returns the signal.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.node.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and reflect.DeepEqual
// otherwise.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
