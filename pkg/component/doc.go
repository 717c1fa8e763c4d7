// Package component pairs a UI builder with a behavior builder under one
// shared namespace, and mounts the pair into a session's reactive graph.
//
// A component is a Def[P, H]: BuildUI describes structure and declares the
// instance's qualified identifiers; BuildBehavior wires those identifiers
// to reactive state through a Host capability and returns a typed handle H.
// The handle is the only channel between an instance and its caller.
// Guessing a sibling's qualified name is not part of the contract, and the
// Host refuses names outside its own scope.
//
// Binding is curried: Bind fixes the scope first, Mount instantiates.
//
//	picker := component.Def[DateProps, DateHandle]{ ... }
//	inst, err := picker.Bind("birthday").Mount(root, props)
//
// Mounting two siblings with one scope fails with ErrDuplicateScope;
// aliased state is rejected up front rather than documented away.
// Unmounting disposes the instance's owner, retires its names in the
// engine, and frees the scope for reuse under the same parent.
package component
