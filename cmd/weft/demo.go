package main

import (
	"fmt"
	"time"

	"github.com/weft-ui/weft/el"
	"github.com/weft-ui/weft/pkg/component"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/ui"
)

// dateProps configures one date input instance.
type dateProps struct {
	Label string
}

// dateHandle exposes the parsed date to whoever mounted the instance.
type dateHandle struct {
	Parsed func() (time.Time, bool)
}

type parsedDate struct {
	t  time.Time
	ok bool
}

// dateInput validates a yyyy-mm-dd value and reports either the
// formatted date or a per-instance error message.
var dateInput = component.Def[dateProps, dateHandle]{
	Name: "dateInput",
	BuildUI: func(ns *scope.Namespace, props dateProps) (*ui.Fragment, error) {
		value, err := ns.Name("value")
		if err != nil {
			return nil, err
		}
		display, err := ns.Name("display")
		if err != nil {
			return nil, err
		}
		errName, err := ns.Name("error")
		if err != nil {
			return nil, err
		}
		return el.Label(
			props.Label,
			ui.Input("input", value).WithAttr("type", "date"),
			ui.Output("output", display),
			el.Class("date-field"),
			ui.Output("span", errName).WithAttr("class", "error"),
		), nil
	},
	BuildBehavior: func(ns *scope.Namespace, host *component.Host, props dateProps) (dateHandle, error) {
		value, err := host.Input("value")
		if err != nil {
			return dateHandle{}, err
		}

		parsed := component.Derive(host, func() parsedDate {
			raw := value.Get()
			if raw == "" {
				return parsedDate{}
			}
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return parsedDate{}
			}
			return parsedDate{t: t, ok: true}
		})

		if _, err := host.Output("display", func() string {
			if p := parsed.Get(); p.ok {
				return p.t.Format("Monday, January 2, 2006")
			}
			return ""
		}); err != nil {
			return dateHandle{}, err
		}

		if _, err := host.Output("error", func() string {
			raw := value.Get()
			if raw == "" || parsed.Get().ok {
				return ""
			}
			return fmt.Sprintf("%s is not a valid date", raw)
		}); err != nil {
			return dateHandle{}, err
		}

		return dateHandle{
			Parsed: func() (time.Time, bool) {
				p := parsed.Get()
				return p.t, p.ok
			},
		}, nil
	},
}

// mountDemo builds the demo tree: the same component twice, isolated by
// scope.
func mountDemo(root *component.Node) error {
	if _, err := dateInput.Bind("birthday").Mount(root, dateProps{Label: "Birthday"}); err != nil {
		return err
	}
	if _, err := dateInput.Bind("anniversary").Mount(root, dateProps{Label: "Anniversary"}); err != nil {
		return err
	}
	return nil
}
