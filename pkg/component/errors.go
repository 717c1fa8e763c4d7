package component

import (
	"errors"
	"fmt"

	"github.com/weft-ui/weft/pkg/scope"
)

// ErrDuplicateScope is returned when two sibling instances are mounted
// with the same scope under one parent. Aliased reactive state is never
// tolerated silently; the second mount is rejected before any UI or
// behavior is constructed.
var ErrDuplicateScope = errors.New("weft: duplicate sibling scope")

// ErrNilBuilder is returned when a Def is mounted without both builders.
var ErrNilBuilder = errors.New("weft: component def missing builder")

// ScopeConflictError wraps ErrDuplicateScope with the conflicting scope
// and its parent.
type ScopeConflictError struct {
	// ScopeID is the sibling scope that was mounted twice.
	ScopeID string

	// Parent is the parent scope the conflict occurred under, zero for
	// the root.
	Parent scope.Scope
}

// Error implements the error interface.
func (e *ScopeConflictError) Error() string {
	if e.Parent.IsZero() {
		return fmt.Sprintf("weft: scope %q already mounted at root", e.ScopeID)
	}
	return fmt.Sprintf("weft: scope %q already mounted under %q", e.ScopeID, e.Parent)
}

// Unwrap returns ErrDuplicateScope so errors.Is matches.
func (e *ScopeConflictError) Unwrap() error {
	return ErrDuplicateScope
}
