// Package prompts registers the server's canned MCP prompts.
//
// The prompts are thin: each one renders a short instruction block that
// points the model at the reminders and calendar tools. All state lives
// behind those tools.
package prompts
