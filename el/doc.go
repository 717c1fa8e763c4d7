// Package el provides terse constructors for building ui.Fragment trees.
//
// Instead of:
//
//	ui.El("div", ui.Text("hi")).WithAttr("class", "greeting")
//
// write:
//
//	el.Div(el.Class("greeting"), el.Text("hi"))
//
// Constructors accept a mix of child fragments, plain strings (which
// become text nodes), and Attr values.
package el
