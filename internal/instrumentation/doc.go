// Package instrumentation provides OpenTelemetry-based observability for the
// ekbridge MCP server.
//
// It exposes a Provider that wires metric and trace exporters (Prometheus,
// OTLP or stdout) and a Metrics recorder with counters and histograms for
// the surfaces that matter here: native CLI invocations, permission-dialog
// triggers (including de-duplicated ones), the one-shot permission retry,
// and MCP tool invocations.
//
// Instrumentation is disabled entirely with INSTRUMENTATION_ENABLED=false;
// all recorder methods are safe to call on a disabled or nil Metrics value.
package instrumentation
