// Package scope provides the namespacing primitives that let independently
// authored components coexist in one reactive graph without identifier
// collisions.
//
// A Scope is an opaque token supplied by a component's caller. A component
// author names controls and signals with short local names; qualifying a
// local name against a scope yields a globally unique Name:
//
//	s := scope.MustScope("birthday")
//	name, _ := s.Qualify("day")   // "birthday.day"
//
// Qualification is a pure function: no counters, no registries. The same
// scope and local always produce the same Name, distinct scopes never
// produce the same Name for any local, and distinct locals never collide
// within one scope.
//
// Scopes compose for nested instantiation:
//
//	inner, _ := parent.Child("picker")
//	inner.Qualify("day")          // "form.picker.day"
//
// Identifiers are validated at construction. The separator and any character
// outside [A-Za-z0-9_] are rejected with ErrInvalidIdentifier rather than
// escaped, so a malformed name can never silently alias another.
package scope
