// Package weft provides the public API for the Weft component runtime.
//
// This is the recommended import for most applications:
//
//	import "github.com/weft-ui/weft"
//
// Usage:
//
//	eng := weft.NewEngine()
//	root := weft.NewRoot(eng)
//	inst, err := myComponent.Bind("sidebar").Mount(root, props)
//
// The subpackages hold the full surface: pkg/scope for identifier
// qualification, pkg/component for definitions and mounting, pkg/reactive
// for signals and memos, pkg/server for the WebSocket runtime.
package weft

import (
	"github.com/weft-ui/weft/pkg/component"
	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/ui"
)

// Scope is a validated namespace prefix. Two distinct scopes can never
// qualify local names to the same identifier.
type Scope = scope.Scope

// Name is a fully qualified identifier: scope, separator, local name.
type Name = scope.Name

// Namespace mints and records the identifiers of one component instance.
type Namespace = scope.Namespace

// Host is the capability a behavior builder uses to reach its instance's
// reactive state.
type Host = component.Host

// Node is a mount point for component instances.
type Node = component.Node

// Engine owns the bound inputs and outputs of one session.
type Engine = engine.Engine

// Patch is one output update produced by a flush.
type Patch = engine.Patch

// Fragment is one node of a component's UI description.
type Fragment = ui.Fragment

// NewScope validates id and returns it as a Scope.
func NewScope(id string) (Scope, error) {
	return scope.New(id)
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return engine.New()
}

// NewRoot creates the root mount point for a session over eng.
func NewRoot(eng *Engine) *Node {
	return component.NewRoot(eng)
}

// NewSignal creates a reactive value holder.
func NewSignal[T any](initial T) *reactive.Signal[T] {
	return reactive.NewSignal(initial)
}

// NewMemo creates a cached derived computation.
func NewMemo[T any](compute func() T) *reactive.Memo[T] {
	return reactive.NewMemo(compute)
}

// Untracked runs fn with dependency tracking suspended.
func Untracked(fn func()) {
	reactive.Untracked(fn)
}

// Batch coalesces the notifications of several writes into one flush.
func Batch(fn func()) {
	reactive.Batch(fn)
}
