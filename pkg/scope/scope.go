package scope

import "strings"

// Separator joins scope segments and the final local name inside a
// qualified Name. It is reserved: no scope or local name may contain it.
const Separator = "."

// Scope is an opaque namespace token supplied by a component's caller.
// A Scope is immutable once constructed and safe to copy and share.
//
// Sibling instantiations under one parent must use distinct Scopes; the
// component registry enforces this at mount time.
type Scope struct {
	id string
}

// Name is a fully qualified identifier: one or more scope segments joined
// with Separator, followed by a local name. Names are globally unique as
// long as sibling scopes are unique, which is what makes two instances of
// the same component safe to mount side by side.
type Name string

// New validates id and returns it as a Scope.
// The id must be non-empty and drawn from [A-Za-z0-9_].
func New(id string) (Scope, error) {
	if err := checkIdentifier(id); err != nil {
		return Scope{}, err
	}
	return Scope{id: id}, nil
}

// MustScope is like New but panics on invalid input.
// Use for scope literals in static component declarations.
func MustScope(id string) Scope {
	s, err := New(id)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the scope token, including any composed parent segments.
func (s Scope) String() string {
	return s.id
}

// IsZero reports whether the scope is the zero value (never valid).
func (s Scope) IsZero() bool {
	return s.id == ""
}

// Qualify composes the scope with a local name into a qualified Name.
// It is a pure function: identical inputs always produce identical output.
func (s Scope) Qualify(local string) (Name, error) {
	if s.IsZero() {
		return "", &IdentifierError{Token: "", Reason: "zero scope"}
	}
	if err := checkIdentifier(local); err != nil {
		return "", err
	}
	return Name(s.id + Separator + local), nil
}

// MustQualify is like Qualify but panics on invalid input.
func (s Scope) MustQualify(local string) Name {
	n, err := s.Qualify(local)
	if err != nil {
		panic(err)
	}
	return n
}

// Child composes this scope with an inner scope id for nested
// instantiation. The result carries every outer segment, so qualified
// names stay unique at any nesting depth as long as siblings at each
// level are distinct.
func (s Scope) Child(inner string) (Scope, error) {
	if s.IsZero() {
		return Scope{}, &IdentifierError{Token: "", Reason: "zero scope"}
	}
	if err := checkIdentifier(inner); err != nil {
		return Scope{}, err
	}
	return Scope{id: s.id + Separator + inner}, nil
}

// MustChild is like Child but panics on invalid input.
func (s Scope) MustChild(inner string) Scope {
	c, err := s.Child(inner)
	if err != nil {
		panic(err)
	}
	return c
}

// Contains reports whether n was qualified under this scope, directly or
// through a composed child scope.
func (s Scope) Contains(n Name) bool {
	if s.IsZero() {
		return false
	}
	return strings.HasPrefix(string(n), s.id+Separator)
}

// Split decomposes a qualified Name into the Scope that produced it and
// the local name. The composition is reversible because the separator is
// forbidden inside segments: the last segment is always the local name.
func Split(n Name) (Scope, string) {
	i := strings.LastIndex(string(n), Separator)
	if i < 0 {
		return Scope{}, string(n)
	}
	return Scope{id: string(n[:i])}, string(n[i+1:])
}

// Scope returns the Scope portion of a qualified Name.
func (n Name) Scope() Scope {
	s, _ := Split(n)
	return s
}

// Local returns the local-name portion of a qualified Name.
func (n Name) Local() string {
	_, local := Split(n)
	return local
}

// checkIdentifier validates a single scope segment or local name.
func checkIdentifier(id string) error {
	if id == "" {
		return &IdentifierError{Token: id, Reason: "empty"}
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			if string(r) == Separator {
				return &IdentifierError{Token: id, Reason: "contains reserved separator"}
			}
			return &IdentifierError{Token: id, Reason: "character outside [A-Za-z0-9_]"}
		}
	}
	return nil
}
