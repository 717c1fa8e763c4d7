package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a lifetime scope for reactive primitives. Each component
// instance holds one Owner, parented to its caller's Owner, mirroring the
// instantiation tree. Disposing an Owner disposes its children (in reverse
// creation order), its effects, and its registered cleanups, and drops any
// effect still pending against it.
type Owner struct {
	id uint64

	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingEffects are effects scheduled to run on the next Flush.
	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	disposed atomic.Bool
}

// NewOwner creates an Owner under parent. A nil parent creates a root
// Owner (typically one per session).
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.addChild(o)
	}
	return o
}

// ID returns the unique identifier for this owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent owner, nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has run.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers fn to run on disposal. If the owner is already
// disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}
	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}
	o.pendingEffectsMu.Lock()
	defer o.pendingEffectsMu.Unlock()
	o.pendingEffects = append(o.pendingEffects, e)
}

// Flush runs pending effects on this owner and, recursively, its
// children. The runtime calls this after each event dispatch. Effects
// whose owner was disposed in the meantime are dropped.
func (o *Owner) Flush() {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	for _, e := range effects {
		if e.pending.Load() {
			e.run()
		}
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.Flush()
	}
}

// HasPending reports whether this owner or any child has effects waiting
// for a Flush.
func (o *Owner) HasPending() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingEffectsMu.Lock()
	pending := len(o.pendingEffects) > 0
	o.pendingEffectsMu.Unlock()
	if pending {
		return true
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		if child.HasPending() {
			return true
		}
	}
	return false
}

// Dispose tears down this owner: children first (in reverse creation
// order), then effects, then cleanups in reverse registration order.
// Pending effects are discarded without running. Idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}
