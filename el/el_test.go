package el

import (
	"testing"

	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/ui"
)

func TestMixedArgs(t *testing.T) {
	f := Div(Class("card"), "hello", Span(Text("world")))

	if f.Tag != "div" {
		t.Errorf("tag = %q", f.Tag)
	}
	if f.Attrs["class"] != "card" {
		t.Errorf("class = %q", f.Attrs["class"])
	}
	if len(f.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(f.Children))
	}
	if f.Children[0].Kind != ui.KindText || f.Children[0].Text != "hello" {
		t.Errorf("child[0] = %+v", f.Children[0])
	}
	if f.Children[1].Tag != "span" {
		t.Errorf("child[1] tag = %q", f.Children[1].Tag)
	}
}

func TestIfSkipsNil(t *testing.T) {
	f := Div(
		If(false, Span("hidden")),
		If(true, Span("shown")),
	)
	if len(f.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(f.Children))
	}
}

func TestIfElse(t *testing.T) {
	f := IfElse(false, Span("a"), Span("b"))
	if f.Children[0].Text != "b" {
		t.Errorf("got %q", f.Children[0].Text)
	}
}

func TestMap(t *testing.T) {
	items := Map([]string{"a", "b"}, func(s string) *ui.Fragment {
		return Li(s)
	})
	f := Ul(Group(items...))
	var texts []string
	for _, li := range f.Children[0].Children {
		texts = append(texts, li.Children[0].Text)
	}
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("texts = %v", texts)
	}
}

func TestNamesFlowThrough(t *testing.T) {
	sc := scope.MustScope("form")
	n := sc.MustQualify("field")

	f := Div(ui.Input("input", n))
	names := f.Names()
	if len(names) != 1 || names[0] != n {
		t.Errorf("names = %v", names)
	}
}

func TestUnsupportedArgPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unsupported arg type")
		}
	}()
	Div(42)
}
