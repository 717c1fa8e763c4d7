package el

import (
	"fmt"

	"github.com/weft-ui/weft/pkg/ui"
)

// Attr is a key/value attribute for an element constructor.
type Attr struct {
	Key   string
	Value string
}

// Class is shorthand for Attr{"class", v}.
func Class(v string) Attr {
	return Attr{Key: "class", Value: v}
}

// ID is shorthand for Attr{"id", v}.
func ID(v string) Attr {
	return Attr{Key: "id", Value: v}
}

// Type is shorthand for Attr{"type", v}.
func Type(v string) Attr {
	return Attr{Key: "type", Value: v}
}

// E builds an element with the given tag. Args may be *ui.Fragment
// children, strings (text nodes), or Attr values; anything else panics,
// since a bad arg is a programming error at tree construction time.
func E(tag string, args ...any) *ui.Fragment {
	f := ui.El(tag)
	for _, arg := range args {
		switch v := arg.(type) {
		case *ui.Fragment:
			if v != nil {
				f.Append(v)
			}
		case string:
			f.Append(ui.Text(v))
		case Attr:
			f.WithAttr(v.Key, v.Value)
		default:
			panic(fmt.Sprintf("el: unsupported argument type %T", arg))
		}
	}
	return f
}

// Text creates a text node.
func Text(s string) *ui.Fragment {
	return ui.Text(s)
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *ui.Fragment {
	return ui.Text(fmt.Sprintf(format, args...))
}

// Group groups children without a wrapper element.
func Group(children ...*ui.Fragment) *ui.Fragment {
	return ui.Group(children...)
}

// If returns node when condition holds, nil otherwise. E skips nil
// children, so this composes inline.
func If(condition bool, node *ui.Fragment) *ui.Fragment {
	if condition {
		return node
	}
	return nil
}

// IfElse returns ifTrue or ifFalse by condition.
func IfElse(condition bool, ifTrue, ifFalse *ui.Fragment) *ui.Fragment {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Map builds one fragment per item.
func Map[T any](items []T, fn func(T) *ui.Fragment) []*ui.Fragment {
	out := make([]*ui.Fragment, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func Div(args ...any) *ui.Fragment     { return E("div", args...) }
func Span(args ...any) *ui.Fragment    { return E("span", args...) }
func P(args ...any) *ui.Fragment       { return E("p", args...) }
func Label(args ...any) *ui.Fragment   { return E("label", args...) }
func Form(args ...any) *ui.Fragment    { return E("form", args...) }
func Button(args ...any) *ui.Fragment  { return E("button", args...) }
func Section(args ...any) *ui.Fragment { return E("section", args...) }
func Header(args ...any) *ui.Fragment  { return E("header", args...) }
func Footer(args ...any) *ui.Fragment  { return E("footer", args...) }
func Main(args ...any) *ui.Fragment    { return E("main", args...) }
func Nav(args ...any) *ui.Fragment     { return E("nav", args...) }
func Ul(args ...any) *ui.Fragment      { return E("ul", args...) }
func Ol(args ...any) *ui.Fragment      { return E("ol", args...) }
func Li(args ...any) *ui.Fragment      { return E("li", args...) }
func H1(args ...any) *ui.Fragment      { return E("h1", args...) }
func H2(args ...any) *ui.Fragment      { return E("h2", args...) }
func H3(args ...any) *ui.Fragment      { return E("h3", args...) }
func Table(args ...any) *ui.Fragment   { return E("table", args...) }
func Tr(args ...any) *ui.Fragment      { return E("tr", args...) }
func Td(args ...any) *ui.Fragment      { return E("td", args...) }
func Th(args ...any) *ui.Fragment      { return E("th", args...) }
