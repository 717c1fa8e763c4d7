// Package middleware provides observability wrappers for the session
// drive path: Prometheus metrics and OpenTelemetry tracing around every
// input a client sends.
package middleware
