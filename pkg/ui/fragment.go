package ui

import "github.com/weft-ui/weft/pkg/scope"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // structural element with a tag
	KindText                // plain text node
	KindGroup               // grouping without a wrapper element
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// Fragment is one node of a component's UI description. Interactive nodes
// (inputs the user drives, outputs the runtime fills in) carry the
// qualified Name the behavior half binds to; everything else is inert
// structure.
type Fragment struct {
	Kind     Kind
	Tag      string
	Attrs    map[string]string
	Children []*Fragment

	// Text holds the content for KindText nodes.
	Text string

	// Name is the qualified identifier of an interactive slot, or empty
	// for inert nodes. Names must come from the building component's own
	// namespace; the binding layer checks this at mount.
	Name scope.Name
}

// El creates an element fragment.
func El(tag string, children ...*Fragment) *Fragment {
	return &Fragment{
		Kind:     KindElement,
		Tag:      tag,
		Children: children,
	}
}

// Text creates a text fragment.
func Text(s string) *Fragment {
	return &Fragment{Kind: KindText, Text: s}
}

// Group groups children without a wrapper element.
func Group(children ...*Fragment) *Fragment {
	return &Fragment{Kind: KindGroup, Children: children}
}

// Input creates an input slot bound to n.
func Input(tag string, n scope.Name) *Fragment {
	return &Fragment{Kind: KindElement, Tag: tag, Name: n}
}

// Output creates an output placeholder bound to n.
func Output(tag string, n scope.Name) *Fragment {
	return &Fragment{Kind: KindElement, Tag: tag, Name: n}
}

// WithAttr sets an attribute and returns the fragment for chaining.
func (f *Fragment) WithAttr(key, value string) *Fragment {
	if f.Attrs == nil {
		f.Attrs = make(map[string]string)
	}
	f.Attrs[key] = value
	return f
}

// Append adds children and returns the fragment for chaining.
func (f *Fragment) Append(children ...*Fragment) *Fragment {
	f.Children = append(f.Children, children...)
	return f
}

// Names collects every qualified identifier referenced in the tree, in
// document order. Duplicates appear once, at their first position.
func (f *Fragment) Names() []scope.Name {
	var out []scope.Name
	seen := make(map[scope.Name]bool)
	f.walk(func(node *Fragment) {
		if node.Name != "" && !seen[node.Name] {
			seen[node.Name] = true
			out = append(out, node.Name)
		}
	})
	return out
}

// walk visits f and its descendants depth first.
func (f *Fragment) walk(visit func(*Fragment)) {
	if f == nil {
		return
	}
	visit(f)
	for _, child := range f.Children {
		child.walk(visit)
	}
}
