// Package calendar_tools provides MCP tools for macOS Calendar.
//
// # Available Tools
//
// Read tools (always available):
//   - calendar_list_calendars: List all calendars
//   - calendar_list_events: List events within a date window
//
// Write tools (require the server to run with --yolo):
//   - calendar_create_event: Create a new event
//   - calendar_update_event: Update an existing event
//   - calendar_delete_event: Delete an event
//
// All tools go through the CLI bridge, which triggers the macOS permission
// dialog and retries once when access has not been granted yet.
package calendar_tools
