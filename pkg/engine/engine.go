package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/weft-ui/weft/pkg/reactive"
	"github.com/weft-ui/weft/pkg/scope"
)

// ErrUnknownName is returned by Drive for a name no live instance owns.
var ErrUnknownName = errors.New("weft: unknown name")

// ErrRetiredName is returned by Drive for a name whose instance has been
// torn down. The write is dropped, never buffered.
var ErrRetiredName = errors.New("weft: name retired")

// ErrNameBound is returned when a component binds the same qualified name
// twice. With unique sibling scopes this can only mean a component author
// declared one local name for two controls.
var ErrNameBound = errors.New("weft: name already bound")

// Patch is one output change produced by a Drive call.
type Patch struct {
	Name  scope.Name
	Value string
}

// output tracks one registered output: its render function and the last
// value delivered.
type output struct {
	render func() string
	last   string
}

// Engine is the binding table for one session's reactive graph.
//
// Methods are safe for concurrent use, but Drive is designed to be called
// from a single goroutine (the session event loop); the engine is the
// funnel that keeps the graph single-writer.
type Engine struct {
	mu sync.Mutex

	root *reactive.Owner

	inputs  map[scope.Name]*reactive.Signal[string]
	outputs map[scope.Name]*output
	retired map[scope.Name]bool

	// changed accumulates output names invalidated since the last Drain.
	changed []scope.Name
}

// New creates an empty engine with a fresh root owner.
func New() *Engine {
	return &Engine{
		root:    reactive.NewOwner(nil),
		inputs:  make(map[scope.Name]*reactive.Signal[string]),
		outputs: make(map[scope.Name]*output),
		retired: make(map[scope.Name]bool),
	}
}

// Root returns the owner that instance owners are parented to.
func (e *Engine) Root() *reactive.Owner {
	return e.root
}

// BindInput registers n as an input and returns its backing signal.
// Binding a name twice is an authoring error.
func (e *Engine) BindInput(n scope.Name) (*reactive.Signal[string], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.inputs[n]; ok {
		return nil, fmt.Errorf("bind input %q: %w", n, ErrNameBound)
	}
	sig := reactive.NewSignal("")
	e.inputs[n] = sig
	delete(e.retired, n)
	return sig, nil
}

// BindOutput registers n as an output computed by render. The render
// function runs under the calling instance's owner via an effect, so its
// reactive reads are tracked and its recomputation stops at teardown.
func (e *Engine) BindOutput(n scope.Name, render func() string) error {
	e.mu.Lock()
	if _, ok := e.outputs[n]; ok {
		e.mu.Unlock()
		return fmt.Errorf("bind output %q: %w", n, ErrNameBound)
	}
	out := &output{render: render}
	e.outputs[n] = out
	delete(e.retired, n)
	e.mu.Unlock()

	// Every run, the first included, marks the output changed for the
	// next Drain. The first run is what carries an output's initial
	// value to a fresh client; Drain dedups repeats to the latest value.
	reactive.NewEffect(func() reactive.Cleanup {
		value := render()

		e.mu.Lock()
		out.last = value
		e.changed = append(e.changed, n)
		e.mu.Unlock()

		return nil
	})
	return nil
}

// Drive pushes an input value into the graph by qualified name and flushes
// the resulting recomputation. It is the transport's only entry point.
func (e *Engine) Drive(n scope.Name, value string) error {
	e.mu.Lock()
	if e.retired[n] {
		e.mu.Unlock()
		return fmt.Errorf("drive %q: %w", n, ErrRetiredName)
	}
	sig, ok := e.inputs[n]
	e.mu.Unlock()

	if !ok {
		return fmt.Errorf("drive %q: %w", n, ErrUnknownName)
	}

	sig.Set(value)
	e.root.Flush()
	return nil
}

// Drain returns the output patches produced since the last Drain, in
// invalidation order, deduplicated to the latest value per name.
func (e *Engine) Drain() []Patch {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.changed) == 0 {
		return nil
	}

	seen := make(map[scope.Name]bool, len(e.changed))
	patches := make([]Patch, 0, len(e.changed))
	for _, n := range e.changed {
		if seen[n] {
			continue
		}
		seen[n] = true
		if out, ok := e.outputs[n]; ok {
			patches = append(patches, Patch{Name: n, Value: out.last})
		}
	}
	e.changed = nil
	return patches
}

// OutputValue returns the last computed value for an output name.
func (e *Engine) OutputValue(n scope.Name) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	out, ok := e.outputs[n]
	if !ok {
		return "", false
	}
	return out.last, true
}

// InputValue returns the current value of an input name without
// subscribing.
func (e *Engine) InputValue(n scope.Name) (string, bool) {
	e.mu.Lock()
	sig, ok := e.inputs[n]
	e.mu.Unlock()

	if !ok {
		return "", false
	}
	return sig.Peek(), true
}

// SnapshotInputs returns every live input's current value, keyed by
// qualified name. Used by session persistence.
func (e *Engine) SnapshotInputs() map[scope.Name]string {
	e.mu.Lock()
	names := make([]scope.Name, 0, len(e.inputs))
	sigs := make([]*reactive.Signal[string], 0, len(e.inputs))
	for n, sig := range e.inputs {
		names = append(names, n)
		sigs = append(sigs, sig)
	}
	e.mu.Unlock()

	snap := make(map[scope.Name]string, len(names))
	for i, n := range names {
		snap[n] = sigs[i].Peek()
	}
	return snap
}

// RestoreInputs drives each stored value into its input, skipping names
// that no longer exist. Used when resuming a persisted session.
func (e *Engine) RestoreInputs(values map[scope.Name]string) {
	for n, v := range values {
		// Best effort: unknown names were torn down since the snapshot.
		_ = e.Drive(n, v)
	}
}

// Release retires every given name. Their inputs and outputs are removed
// and later Drive calls against them fail with ErrRetiredName. Called by
// the component layer at teardown, after the instance owner is disposed.
func (e *Engine) Release(names []scope.Name) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, n := range names {
		if _, ok := e.inputs[n]; !ok {
			if _, ok := e.outputs[n]; !ok {
				continue
			}
		}
		delete(e.inputs, n)
		delete(e.outputs, n)
		e.retired[n] = true
	}
}
