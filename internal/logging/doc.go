// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase so log
// entries stay correlatable, and a Setup function that routes all output to
// stderr because stdout carries the MCP stdio transport.
package logging
