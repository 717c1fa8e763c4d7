package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/server"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func drive(mw server.Middleware, name scope.Name, inner server.DriveFunc) error {
	return mw(inner)(context.Background(), name, "v")
}

func TestPrometheusRecordsSuccess(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg))

	err := drive(mw, "form.field", func(context.Context, scope.Name, string) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()

	if got := counterValue(t, m.inputsTotal.WithLabelValues("form", "success")); got != 1 {
		t.Errorf("inputs_total(success) = %v, want 1", got)
	}
	if got := counterValue(t, m.inputsTotal.WithLabelValues("form", "error")); got != 0 {
		t.Errorf("inputs_total(error) = %v, want 0", got)
	}
	if got := histogramCount(t, m.inputDuration.WithLabelValues("form")); got != 1 {
		t.Errorf("input_duration count = %v, want 1", got)
	}
}

func TestPrometheusRecordsErrorType(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(reg))

	err := drive(mw, "form.field", func(context.Context, scope.Name, string) error {
		return engine.ErrUnknownName
	})
	if !errors.Is(err, engine.ErrUnknownName) {
		t.Fatalf("error not propagated: %v", err)
	}

	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()

	if got := counterValue(t, m.inputErrors.WithLabelValues("form", "unknown_name")); got != 1 {
		t.Errorf("input_errors(unknown_name) = %v, want 1", got)
	}
	if got := counterValue(t, m.inputsTotal.WithLabelValues("form", "error")); got != 1 {
		t.Errorf("inputs_total(error) = %v, want 1", got)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{engine.ErrUnknownName, "unknown_name"},
		{engine.ErrRetiredName, "retired_name"},
		{&scope.OutOfScopeError{Name: "a.b", Scope: scope.MustScope("c")}, "out_of_scope"},
		{scope.ErrInvalidIdentifier, "invalid_identifier"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestScopeLabel(t *testing.T) {
	if got := scopeLabel("outer.inner.field"); got != "outer.inner" {
		t.Errorf("scopeLabel = %q, want outer.inner", got)
	}
}
