package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/weft-ui/weft/pkg/scope"
	"github.com/weft-ui/weft/pkg/server"
)

// Default tracer name.
const defaultTracerName = "weft"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "weft").
	TracerName string

	// IncludeValue records the input value on the span. Input values may
	// contain user data, so this is disabled by default.
	IncludeValue bool

	// Filter determines which inputs to trace. Return true to trace the
	// input, false to skip. If nil, all inputs are traced.
	Filter func(name scope.Name) bool

	// AttributeExtractor extracts custom attributes per input.
	AttributeExtractor func(name scope.Name, value string) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeValue enables recording input values on spans.
func WithIncludeValue(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeValue = include
	}
}

// WithInputFilter sets a filter function for inputs.
func WithInputFilter(filter func(name scope.Name) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(name scope.Name, value string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates middleware that traces every input driven through
// a session. Each input gets a span named "input <scope>" with the
// qualified name attached; errors mark the span.
//
// The tracer comes from the global OpenTelemetry tracer provider.
// Configure it in main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(next server.DriveFunc) server.DriveFunc {
		return func(ctx context.Context, name scope.Name, value string) error {
			if config.Filter != nil && !config.Filter(name) {
				return next(ctx, name, value)
			}

			attrs := []attribute.KeyValue{
				attribute.String("weft.input.name", string(name)),
				attribute.String("weft.input.scope", scopeLabel(name)),
			}
			if config.IncludeValue {
				attrs = append(attrs, attribute.String("weft.input.value", value))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(name, value)...)
			}

			ctx, span := config.tracer.Start(ctx, "input "+scopeLabel(name),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(ctx, name, value)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return err
		}
	}
}
