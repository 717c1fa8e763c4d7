package scope

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is returned when a scope or local name is empty,
// contains the separator, or contains characters outside the identifier
// alphabet (letters, digits, underscore).
//
// This is a programmer error: it indicates a defect in component
// composition, not a transient condition. Callers should not retry.
var ErrInvalidIdentifier = errors.New("weft: invalid identifier")

// ErrOutOfScope is returned when a qualified name is presented to a
// capability that is restricted to a different scope.
var ErrOutOfScope = errors.New("weft: name out of scope")

// IdentifierError wraps ErrInvalidIdentifier with the offending token and
// the reason it was rejected.
type IdentifierError struct {
	// Token is the identifier that failed validation.
	Token string

	// Reason describes why the token was rejected.
	Reason string
}

// Error implements the error interface.
func (e *IdentifierError) Error() string {
	return fmt.Sprintf("weft: invalid identifier %q: %s", e.Token, e.Reason)
}

// Unwrap returns ErrInvalidIdentifier so errors.Is matches.
func (e *IdentifierError) Unwrap() error {
	return ErrInvalidIdentifier
}

// OutOfScopeError wraps ErrOutOfScope with the name that was refused and
// the scope that refused it.
type OutOfScopeError struct {
	// Name is the qualified name that was presented.
	Name Name

	// Scope is the scope the capability is restricted to.
	Scope Scope
}

// Error implements the error interface.
func (e *OutOfScopeError) Error() string {
	return fmt.Sprintf("weft: name %q is outside scope %q", e.Name, e.Scope)
}

// Unwrap returns ErrOutOfScope so errors.Is matches.
func (e *OutOfScopeError) Unwrap() error {
	return ErrOutOfScope
}
