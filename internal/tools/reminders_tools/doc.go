// Package reminders_tools provides MCP tools for macOS Reminders.
//
// # Available Tools
//
// Read tools (always available):
//   - reminders_list_lists: List all reminder lists
//   - reminders_list: List reminders with optional filters
//
// Write tools (require the server to run with --yolo):
//   - reminders_create: Create a new reminder
//   - reminders_update: Update an existing reminder
//   - reminders_delete: Delete a reminder
//   - reminders_move: Move a reminder between lists
//
// All tools go through the CLI bridge, which triggers the macOS permission
// dialog and retries once when access has not been granted yet.
package reminders_tools
