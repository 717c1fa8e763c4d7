// Package reactive provides the dependency-tracking primitives the weft
// component model builds on: reactive values, derived computations, and
// effects, scoped by an ownership tree.
//
// Signal[T] is a reactive value container:
//
//	count := reactive.NewSignal(0)
//	value := count.Get()  // read (subscribes the current listener)
//	count.Set(5)          // write (notifies subscribers on change)
//
// Memo[T] is a lazy cached derivation:
//
//	doubled := reactive.NewMemo(func() int { return count.Get() * 2 })
//
// Dependencies are tracked implicitly: reading a signal inside a tracked
// context (memo computation, effect body) subscribes the current listener.
// The tracking context is per-goroutine; use WithOwner/WithListener when
// crossing goroutines.
//
// Owner forms the lifetime tree. Disposing an Owner disposes its children,
// effects, and cleanups, and drops any recomputation still pending against
// them. Component instances each hold one Owner, so tearing down a parent
// scope retires everything beneath it.
package reactive
