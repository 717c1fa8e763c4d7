package component

import (
	"sync"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
)

// Node is a mount point: the root of a session, or the interior of a
// mounted instance where nested components attach. It tracks which
// sibling scopes are live beneath it so duplicate mounts are caught.
type Node struct {
	eng   *engine.Engine
	scope scope.Scope // zero at the root
	owner *reactive.Owner

	mu       sync.Mutex
	siblings map[string]bool
	mounted  []unmounter
}

// unmounter lets a Node tear down its mounted instances without knowing
// their handle types.
type unmounter interface {
	Unmount()
}

// NewRoot creates the root mount point for a session over eng.
func NewRoot(eng *engine.Engine) *Node {
	return &Node{
		eng:      eng,
		owner:    eng.Root(),
		siblings: make(map[string]bool),
	}
}

// Engine returns the engine this node mounts into.
func (n *Node) Engine() *engine.Engine {
	return n.eng
}

// Scope returns the node's scope; zero for the root.
func (n *Node) Scope() scope.Scope {
	return n.scope
}

// claim reserves a sibling scope id, failing on conflict.
func (n *Node) claim(scopeID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.siblings[scopeID] {
		return &ScopeConflictError{ScopeID: scopeID, Parent: n.scope}
	}
	n.siblings[scopeID] = true
	return nil
}

// release frees a sibling scope id after teardown, making it reusable.
func (n *Node) release(scopeID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.siblings, scopeID)
}

// adopt records a mounted instance for recursive teardown.
func (n *Node) adopt(inst unmounter) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.mounted = append(n.mounted, inst)
}

// unmountAll tears down every instance mounted at this node, most recent
// first.
func (n *Node) unmountAll() {
	n.mu.Lock()
	mounted := n.mounted
	n.mounted = nil
	n.mu.Unlock()

	for i := len(mounted) - 1; i >= 0; i-- {
		mounted[i].Unmount()
	}
}

// childScope composes the node's scope with a sibling id. At the root the
// sibling id alone is the full scope.
func (n *Node) childScope(scopeID string) (scope.Scope, error) {
	if n.scope.IsZero() {
		return scope.New(scopeID)
	}
	return n.scope.Child(scopeID)
}
