// Package permissions_tools provides MCP tools for inspecting and requesting
// macOS privacy permissions.
//
// # Available Tools
//
//   - permissions_get_status: Report the authorization state for a scope
//   - permissions_request: Trigger the OS permission dialog for a scope
//
// Both tools are registered regardless of read-only mode. The OS owns the
// permission state; the server can only ask.
package permissions_tools
