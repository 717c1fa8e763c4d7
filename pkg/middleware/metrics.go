package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weft-ui/weft/pkg/engine"
	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/server"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for input duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	inputsTotal   *prometheus.CounterVec
	inputDuration *prometheus.HistogramVec
	inputErrors   *prometheus.CounterVec
}

// Metrics are registered once per process; repeat Prometheus() calls
// share the first instance.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		inputsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "inputs_total",
			Help:        "Total number of client inputs processed",
			ConstLabels: config.ConstLabels,
		}, []string{"scope", "status"}),

		inputDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "input_duration_seconds",
			Help:        "Input processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"scope"}),

		inputErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "input_errors_total",
			Help:        "Total number of rejected inputs by error type",
			ConstLabels: config.ConstLabels,
		}, []string{"scope", "error_type"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// every input driven through a session.
//
// Metrics collected:
//   - weft_inputs_total: Counter of inputs by scope and status
//   - weft_input_duration_seconds: Histogram of input processing duration
//   - weft_input_errors_total: Counter of rejected inputs by error type
//
// The scope label is the input's scope segment, not the full qualified
// name, to keep cardinality bounded by the component tree rather than
// by its identifier surface.
//
// Example:
//
//	srv := server.New(cfg, mount,
//	    server.WithMiddleware(middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	    server.WithHandler("/metrics", promhttp.Handler()),
//	)
func Prometheus(opts ...MetricsOption) server.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next server.DriveFunc) server.DriveFunc {
		return func(ctx context.Context, name scope.Name, value string) error {
			sc := scopeLabel(name)

			start := time.Now()
			err := next(ctx, name, value)
			m.inputDuration.WithLabelValues(sc).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.inputErrors.WithLabelValues(sc, categorizeError(err)).Inc()
			}
			m.inputsTotal.WithLabelValues(sc, status).Inc()

			return err
		}
	}
}

// scopeLabel returns the scope segment of a qualified name, or the whole
// name when it has no separator.
func scopeLabel(name scope.Name) string {
	sc := name.Scope()
	if sc.IsZero() {
		return string(name)
	}
	return sc.String()
}

// categorizeError maps an error to a bounded label value. Raw error
// messages would make the label cardinality unbounded.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, engine.ErrUnknownName):
		return "unknown_name"
	case errors.Is(err, engine.ErrRetiredName):
		return "retired_name"
	case errors.Is(err, scope.ErrOutOfScope):
		return "out_of_scope"
	case errors.Is(err, scope.ErrInvalidIdentifier):
		return "invalid_identifier"
	default:
		return "internal"
	}
}
