// Package common provides shared helpers for the MCP tool packages.
//
// InstrumentedToolHandler wraps tool handlers so every invocation is counted
// and timed when instrumentation is enabled.
package common
