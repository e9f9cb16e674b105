// Package server holds the shared runtime state of the MCP server.
//
// ServerContext carries the CLI bridge and the domain clients that tool
// handlers use, plus the metrics recorder. MetricsServer and HealthChecker
// expose Prometheus metrics and health probes on a dedicated listener when
// the server runs with the HTTP transport.
package server
