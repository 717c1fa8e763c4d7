// Package ui defines the fragment tree a component's UI builder returns.
//
// A Fragment is a structural description only: elements, text, attributes,
// and the qualified identifiers of interactive slots. Rendering fragments
// to HTML, styling them, and cataloguing widgets are a host toolkit's
// business, not this package's.
package ui
