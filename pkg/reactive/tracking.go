package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine: the owner
// that adopts newly created primitives, the listener currently collecting
// dependencies, and the batch state.
type trackingContext struct {
	owner    *Owner
	listener Listener

	batchDepth int
	pending    []Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack.
// Implementation detail; never exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// Stack begins with "goroutine <id> ".
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func currentContext() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func currentListener() Listener {
	return currentContext().listener
}

func swapListener(l Listener) Listener {
	ctx := currentContext()
	old := ctx.listener
	ctx.listener = l
	return old
}

func currentOwner() *Owner {
	return currentContext().owner
}

func swapOwner(o *Owner) *Owner {
	ctx := currentContext()
	old := ctx.owner
	ctx.owner = o
	return old
}

// WithOwner runs fn with o as the current owner. Primitives created inside
// fn belong to o. Use when spawning goroutines that create reactive state
// on behalf of a component.
func WithOwner(o *Owner, fn func()) {
	old := swapOwner(o)
	defer swapOwner(old)
	fn()
}

// WithListener runs fn with l collecting dependencies. Signal reads inside
// fn subscribe l.
func WithListener(l Listener, fn func()) {
	old := swapListener(l)
	defer swapListener(old)
	fn()
}

// Untracked runs fn without dependency collection: signal reads inside do
// not subscribe the current listener.
func Untracked(fn func()) {
	old := swapListener(nil)
	defer swapListener(old)
	fn()
}
