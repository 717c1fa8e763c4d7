package component

import (
	"testing"
	"time"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/ui"
)

// dateHandle exposes a date component's outputs: the parsed date and a
// human-readable validation error, empty when the input parses.
type dateHandle struct {
	Date  *reactive.Memo[time.Time]
	Error *reactive.Memo[string]
}

// dateDef is a date input that validates real calendar dates.
func dateDef() Def[string, dateHandle] {
	return Def[string, dateHandle]{
		Name: "dateinput",
		BuildUI: func(ns *scope.Namespace, label string) (*ui.Fragment, error) {
			value, err := ns.Name("value")
			if err != nil {
				return nil, err
			}
			errOut, err := ns.Name("error")
			if err != nil {
				return nil, err
			}
			return ui.El("fieldset",
				ui.Text(label),
				ui.Input("input", value).WithAttr("type", "text"),
				ui.Output("span", errOut).WithAttr("class", "error"),
			), nil
		},
		BuildBehavior: func(ns *scope.Namespace, host *Host, label string) (dateHandle, error) {
			value, err := host.Input("value")
			if err != nil {
				return dateHandle{}, err
			}

			date := Derive(host, func() time.Time {
				t, err := time.Parse("2006-01-02", value.Get())
				if err != nil {
					return time.Time{}
				}
				return t
			})
			errMsg := Derive(host, func() string {
				raw := value.Get()
				if raw == "" {
					return ""
				}
				if _, err := time.Parse("2006-01-02", raw); err != nil {
					return "not a valid date"
				}
				return ""
			})

			if _, err := host.Output("error", func() string { return errMsg.Get() }); err != nil {
				return dateHandle{}, err
			}
			return dateHandle{Date: date, Error: errMsg}, nil
		},
	}
}

func TestDateInputEndToEnd(t *testing.T) {
	eng := engine.New()
	root := NewRoot(eng)
	def := dateDef()

	birthday, err := def.Bind("birthday").Mount(root, "Birthday")
	if err != nil {
		t.Fatalf("mount birthday: %v", err)
	}
	anniversary, err := def.Bind("anniversary").Mount(root, "Anniversary")
	if err != nil {
		t.Fatalf("mount anniversary: %v", err)
	}

	// February has no 30th; the birthday instance must flag it.
	if err := eng.Drive(scope.Name("birthday.value"), "2020-02-30"); err != nil {
		t.Fatalf("drive: %v", err)
	}

	if got := birthday.Handle.Error.Get(); got == "" {
		t.Errorf("birthday should report an invalid date")
	}
	if got := anniversary.Handle.Error.Get(); got != "" {
		t.Errorf("anniversary error must stay unset, got %q", got)
	}

	// The error is visible through the engine only under the birthday
	// scope.
	if v, _ := eng.OutputValue(scope.Name("birthday.error")); v == "" {
		t.Errorf("birthday error output should be set")
	}
	if v, _ := eng.OutputValue(scope.Name("anniversary.error")); v != "" {
		t.Errorf("anniversary error output must be empty, got %q", v)
	}
}

func TestDateInputValidDateClearsError(t *testing.T) {
	eng := engine.New()
	root := NewRoot(eng)

	inst, err := dateDef().Bind("birthday").Mount(root, "Birthday")
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	_ = eng.Drive(scope.Name("birthday.value"), "2020-02-30")
	if inst.Handle.Error.Get() == "" {
		t.Fatalf("expected error for invalid date")
	}

	_ = eng.Drive(scope.Name("birthday.value"), "2020-02-29")
	if got := inst.Handle.Error.Get(); got != "" {
		t.Errorf("2020 is a leap year; error should clear, got %q", got)
	}

	want := time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)
	if got := inst.Handle.Date.Get(); !got.Equal(want) {
		t.Errorf("expected parsed date %v, got %v", want, got)
	}
}

func TestDateInputOnEvent(t *testing.T) {
	eng := engine.New()
	root := NewRoot(eng)

	var seen []string
	def := Def[struct{}, struct{}]{
		Name: "watcher",
		BuildUI: func(ns *scope.Namespace, _ struct{}) (*ui.Fragment, error) {
			return ui.El("div", ui.Input("input", ns.MustName("value"))), nil
		},
		BuildBehavior: func(ns *scope.Namespace, host *Host, _ struct{}) (struct{}, error) {
			value, err := host.Input("value")
			if err != nil {
				return struct{}{}, err
			}
			host.OnEvent(value, func(v string) {
				seen = append(seen, v)
			})
			return struct{}{}, nil
		},
	}

	inst, err := def.Bind("w").Mount(root, struct{}{})
	if err != nil {
		t.Fatalf("mount: %v", err)
	}

	_ = eng.Drive(scope.Name("w.value"), "a")
	_ = eng.Drive(scope.Name("w.value"), "b")

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("expected handler to see [a b], got %v", seen)
	}

	inst.Unmount()
	if err := eng.Drive(scope.Name("w.value"), "c"); err == nil {
		t.Errorf("drive after unmount should fail")
	}
	if len(seen) != 2 {
		t.Errorf("handler must not fire after unmount, got %v", seen)
	}
}
