package scope

import "sort"

// Namespace is a minting handle bound to one Scope. Components receive a
// Namespace instead of a raw Scope so that every identifier they create is
// qualified and recorded. The recorded set is the component's public
// identifier surface: the wiring layer uses it to know which names an
// instance owns, while the names themselves stay opaque to the caller.
type Namespace struct {
	scope    Scope
	declared map[Name]struct{}
}

// NewNamespace returns a Namespace bound to s.
func NewNamespace(s Scope) *Namespace {
	return &Namespace{
		scope:    s,
		declared: make(map[Name]struct{}),
	}
}

// Scope returns the scope this namespace is bound to.
func (ns *Namespace) Scope() Scope {
	return ns.scope
}

// Name qualifies local against the bound scope and records it as declared.
func (ns *Namespace) Name(local string) (Name, error) {
	n, err := ns.scope.Qualify(local)
	if err != nil {
		return "", err
	}
	ns.declared[n] = struct{}{}
	return n, nil
}

// MustName is like Name but panics on invalid input.
func (ns *Namespace) MustName(local string) Name {
	n, err := ns.Name(local)
	if err != nil {
		panic(err)
	}
	return n
}

// Child returns a Namespace for a nested component instantiated inside
// this one. The child's declarations are its own; they do not appear in
// the parent's declared set.
func (ns *Namespace) Child(inner string) (*Namespace, error) {
	c, err := ns.scope.Child(inner)
	if err != nil {
		return nil, err
	}
	return NewNamespace(c), nil
}

// Declared returns the names minted through this namespace, sorted for
// deterministic iteration.
func (ns *Namespace) Declared() []Name {
	out := make([]Name, 0, len(ns.declared))
	for n := range ns.declared {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Owns reports whether n was minted through this namespace.
func (ns *Namespace) Owns(n Name) bool {
	_, ok := ns.declared[n]
	return ok
}
