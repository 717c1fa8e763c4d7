package component

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/ui"
)

// Def pairs the two halves of a component. P is the props type the caller
// supplies at mount; H is the handle type the behavior half returns.
//
// Both builders close over the same namespace, which is the whole binding
// contract: the UI half declares identifiers, the behavior half wires
// them, and neither can reach outside the scope the caller picked.
type Def[P, H any] struct {
	// Name identifies the component kind in errors. Optional.
	Name string

	// BuildUI describes the instance's structure. Every interactive slot
	// must carry a name minted from ns; foreign names fail the mount.
	BuildUI func(ns *scope.Namespace, props P) (*ui.Fragment, error)

	// BuildBehavior wires the declared identifiers to reactive state via
	// host and returns the instance's handle.
	BuildBehavior func(ns *scope.Namespace, host *Host, props P) (H, error)
}

// Bind fixes the sibling scope, returning a factory that only needs a
// mount point and props. Scope first, construction second: there is no
// half-bound state in which a component runs against unqualified names.
func (d Def[P, H]) Bind(scopeID string) *Bound[P, H] {
	return &Bound[P, H]{def: d, scopeID: scopeID}
}

// Bound is a Def curried with its sibling scope.
type Bound[P, H any] struct {
	def     Def[P, H]
	scopeID string
}

// Mount instantiates the component under parent. It claims the sibling
// scope, builds the UI, verifies the declared identifier surface, and
// runs the behavior builder under a fresh owner. Any failure unwinds
// completely: a failed mount leaves no trace in the graph.
func (b *Bound[P, H]) Mount(parent *Node, props P) (*Instance[H], error) {
	if b.def.BuildUI == nil || b.def.BuildBehavior == nil {
		return nil, fmt.Errorf("%s: %w", b.def.label(), ErrNilBuilder)
	}

	if err := parent.claim(b.scopeID); err != nil {
		return nil, err
	}

	sc, err := parent.childScope(b.scopeID)
	if err != nil {
		parent.release(b.scopeID)
		return nil, err
	}

	ns := scope.NewNamespace(sc)

	frag, err := b.def.BuildUI(ns, props)
	if err != nil {
		parent.release(b.scopeID)
		return nil, fmt.Errorf("%s: build ui: %w", b.def.label(), err)
	}

	// The UI may only reference identifiers it declared through ns.
	for _, n := range frag.Names() {
		if !ns.Owns(n) {
			parent.release(b.scopeID)
			return nil, fmt.Errorf("%s: ui references %w",
				b.def.label(), &scope.OutOfScopeError{Name: n, Scope: sc})
		}
	}

	owner := reactive.NewOwner(parent.owner)
	host := &Host{ns: ns, eng: parent.eng, owner: owner}

	var handle H
	var buildErr error
	reactive.WithOwner(owner, func() {
		handle, buildErr = b.def.BuildBehavior(ns, host, props)
	})
	if buildErr != nil {
		owner.Dispose()
		parent.eng.Release(ns.Declared())
		parent.release(b.scopeID)
		return nil, fmt.Errorf("%s: build behavior: %w", b.def.label(), buildErr)
	}

	inst := &Instance[H]{
		Handle: handle,
		UI:     frag,
		scope:  sc,
		names:  ns.Declared(),
		owner:  owner,
		parent: parent,
		id:     b.scopeID,
	}
	inst.node = &Node{
		eng:      parent.eng,
		scope:    sc,
		owner:    owner,
		siblings: make(map[string]bool),
	}
	parent.adopt(inst)
	return inst, nil
}

func (d Def[P, H]) label() string {
	if d.Name != "" {
		return "component " + d.Name
	}
	return "component"
}

// Instance is one live mounted component. Its Handle is the caller's only
// supported window into the component's state.
type Instance[H any] struct {
	// Handle is the behavior builder's return value.
	Handle H

	// UI is the fragment tree the UI builder produced.
	UI *ui.Fragment

	scope  scope.Scope
	names  []scope.Name
	owner  *reactive.Owner
	parent *Node
	node   *Node
	id     string
}

// Scope returns the instance's full composed scope.
func (i *Instance[H]) Scope() scope.Scope {
	return i.scope
}

// Names returns the qualified identifiers this instance declared.
func (i *Instance[H]) Names() []scope.Name {
	return i.names
}

// Node returns the mount point for components nested inside this one.
func (i *Instance[H]) Node() *Node {
	return i.node
}

// Unmount tears the instance down: nested components and effects are
// disposed through the owner tree, its names are retired in the engine so
// pending recomputation is dropped rather than executed, and the sibling
// scope becomes reusable under the parent. Idempotent.
func (i *Instance[H]) Unmount() {
	if i.owner.IsDisposed() {
		return
	}
	i.node.unmountAll()
	i.owner.Dispose()
	i.parent.eng.Release(i.names)
	i.parent.release(i.id)
}
