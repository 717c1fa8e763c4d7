package ui

import (
	"testing"

	"github.com/weft-ui/weft/pkg/scope"
)

func TestNamesCollectsInDocumentOrder(t *testing.T) {
	s := scope.MustScope("date")
	day := s.MustQualify("day")
	month := s.MustQualify("month")
	errOut := s.MustQualify("error")

	frag := El("fieldset",
		Input("input", day),
		Input("input", month),
		El("div", Output("span", errOut)),
	)

	got := frag.Names()
	want := []scope.Name{day, month, errOut}
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNamesDeduplicates(t *testing.T) {
	s := scope.MustScope("w")
	n := s.MustQualify("x")

	frag := Group(Input("input", n), Output("span", n))
	if got := frag.Names(); len(got) != 1 {
		t.Errorf("expected 1 deduplicated name, got %d", len(got))
	}
}

func TestInertTreeHasNoNames(t *testing.T) {
	frag := El("div", Text("hello"), El("p", Text("world")))
	if got := frag.Names(); len(got) != 0 {
		t.Errorf("expected no names in inert tree, got %v", got)
	}
}

func TestWithAttrChains(t *testing.T) {
	frag := El("div").WithAttr("class", "row").WithAttr("role", "group")
	if frag.Attrs["class"] != "row" || frag.Attrs["role"] != "group" {
		t.Errorf("unexpected attrs: %v", frag.Attrs)
	}
}
