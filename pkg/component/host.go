package component

import (
	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
)

// Host is the capability a behavior builder receives. It is restricted by
// construction to one instance's scope: every identifier it touches goes
// through the instance's own namespace, so a component cannot read or
// write a sibling's or parent's state no matter what string it holds.
type Host struct {
	ns    *scope.Namespace
	eng   *engine.Engine
	owner *reactive.Owner
}

// Namespace returns the namespace this host mints identifiers from.
func (h *Host) Namespace() *scope.Namespace {
	return h.ns
}

// Input declares an input under the instance's scope and returns its
// backing signal. Reading the signal inside memos and effects tracks it.
func (h *Host) Input(local string) (*reactive.Signal[string], error) {
	n, err := h.ns.Name(local)
	if err != nil {
		return nil, err
	}
	return h.eng.BindInput(n)
}

// Output declares an output under the instance's scope. The render
// function's reactive reads are tracked; it re-runs when they change and
// stops for good when the instance is torn down.
func (h *Host) Output(local string, render func() string) (scope.Name, error) {
	n, err := h.ns.Name(local)
	if err != nil {
		return "", err
	}

	var bindErr error
	reactive.WithOwner(h.owner, func() {
		bindErr = h.eng.BindOutput(n, render)
	})
	if bindErr != nil {
		return "", bindErr
	}
	return n, nil
}

// OnEvent invokes handler with the signal's new value whenever it
// changes. The initial value does not fire. The subscription lives and
// dies with the instance.
func (h *Host) OnEvent(sig *reactive.Signal[string], handler func(string)) {
	first := true
	reactive.WithOwner(h.owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			v := sig.Get()
			if first {
				first = false
				return nil
			}
			handler(v)
			return nil
		})
	})
}

// Check verifies that a qualified name presented from outside belongs to
// this instance, returning ErrOutOfScope otherwise. Use when accepting
// names from data rather than minting them.
func (h *Host) Check(n scope.Name) error {
	if h.ns.Owns(n) {
		return nil
	}
	return &scope.OutOfScopeError{Name: n, Scope: h.ns.Scope()}
}

// Derive creates a cached derived computation owned by the host's
// instance. It is the host-side spelling of reactive.NewMemo.
func Derive[T any](h *Host, fn func() T) *reactive.Memo[T] {
	var m *reactive.Memo[T]
	reactive.WithOwner(h.owner, func() {
		m = reactive.NewMemo(fn)
	})
	return m
}
