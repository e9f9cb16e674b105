package reminders_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ekbridge/ekbridge/internal/reminders"
	"github.com/ekbridge/ekbridge/internal/server"
	"github.com/ekbridge/ekbridge/internal/tools/common"
)

// RegisterRemindersTools registers all Reminders-related tools with the MCP server
func RegisterRemindersTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerReadTools(s, sc); err != nil {
		return fmt.Errorf("failed to register reminders read tools: %w", err)
	}

	if !readOnly {
		if err := registerWriteTools(s, sc); err != nil {
			return fmt.Errorf("failed to register reminders write tools: %w", err)
		}
	}

	return nil
}

// registerReadTools registers the tools that never modify reminders
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listListsTool := mcp.NewTool("reminders_list_lists",
		mcp.WithDescription("List all reminder lists"),
	)

	s.AddTool(listListsTool, common.InstrumentedToolHandler("reminders_list_lists", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lists, err := sc.RemindersClient().Lists(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(lists, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	listTool := mcp.NewTool("reminders_list",
		mcp.WithDescription("List reminders, optionally filtered by list, text search or due window"),
		mcp.WithString("list",
			mcp.Description("Restrict results to one reminder list"),
		),
		mcp.WithBoolean("show_completed",
			mcp.Description("Include completed reminders (default: false)"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text to match against titles and notes"),
		),
		mcp.WithString("due_within",
			mcp.Description("Due window filter: today, tomorrow, this-week, overdue or no-date"),
		),
	)

	s.AddTool(listTool, common.InstrumentedToolHandler("reminders_list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		opts := reminders.ListOptions{}
		if v, ok := args["list"].(string); ok {
			opts.List = v
		}
		if v, ok := args["show_completed"].(bool); ok {
			opts.ShowCompleted = v
		}
		if v, ok := args["search"].(string); ok {
			opts.Search = v
		}
		if v, ok := args["due_within"].(string); ok {
			opts.DueWithin = v
		}

		items, err := sc.RemindersClient().Reminders(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(items, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	return nil
}

// registerWriteTools registers the tools that create, modify or delete
// reminders. They are only available when the server runs with --yolo.
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTool := mcp.NewTool("reminders_create",
		mcp.WithDescription("Create a new reminder"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Reminder title"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date, YYYY-MM-DD or 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("list",
			mcp.Description("Target reminder list (default: the default list)"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes body"),
		),
		mcp.WithString("url",
			mcp.Description("URL to attach; appended to the notes"),
		),
	)

	s.AddTool(createTool, common.InstrumentedToolHandler("reminders_create", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title, ok := args["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		req := reminders.CreateRequest{Title: title}
		if v, ok := args["due_date"].(string); ok {
			req.DueDate = v
		}
		if v, ok := args["list"].(string); ok {
			req.List = v
		}
		if v, ok := args["notes"].(string); ok {
			req.Notes = v
		}
		if v, ok := args["url"].(string); ok {
			req.URL = v
		}

		created, err := sc.RemindersClient().Create(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(created, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	updateTool := mcp.NewTool("reminders_update",
		mcp.WithDescription("Update an existing reminder, addressed by its current title"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Current title of the reminder to update"),
		),
		mcp.WithString("list",
			mcp.Description("Narrow the lookup to one reminder list"),
		),
		mcp.WithString("new_title",
			mcp.Description("New title for the reminder"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date, YYYY-MM-DD or 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes body"),
		),
		mcp.WithString("url",
			mcp.Description("URL to attach; appended to the notes"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Set the completion state"),
		),
	)

	s.AddTool(updateTool, common.InstrumentedToolHandler("reminders_update", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title, ok := args["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}

		req := reminders.UpdateRequest{Title: title}
		if v, ok := args["list"].(string); ok {
			req.List = v
		}
		if v, ok := args["new_title"].(string); ok {
			req.NewTitle = v
		}
		if v, ok := args["due_date"].(string); ok {
			req.DueDate = v
		}
		if v, ok := args["notes"].(string); ok {
			req.Notes = v
		}
		if v, ok := args["url"].(string); ok {
			req.URL = v
		}
		if v, ok := args["completed"].(bool); ok {
			req.Completed = &v
		}

		updated, err := sc.RemindersClient().Update(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(updated, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	deleteTool := mcp.NewTool("reminders_delete",
		mcp.WithDescription("Delete a reminder by title"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the reminder to delete"),
		),
		mcp.WithString("list",
			mcp.Description("Narrow the lookup to one reminder list"),
		),
	)

	s.AddTool(deleteTool, common.InstrumentedToolHandler("reminders_delete", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title, ok := args["title"].(string)
		if !ok || title == "" {
			return mcp.NewToolResultError("title is required"), nil
		}
		list, _ := args["list"].(string)

		if err := sc.RemindersClient().Delete(ctx, title, list); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Deleted reminder %q", title)), nil
	}))

	moveTool := mcp.NewTool("reminders_move",
		mcp.WithDescription("Move a reminder from one list to another"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the reminder to move"),
		),
		mcp.WithString("from_list",
			mcp.Required(),
			mcp.Description("List the reminder currently belongs to"),
		),
		mcp.WithString("to_list",
			mcp.Required(),
			mcp.Description("List to move the reminder to"),
		),
	)

	s.AddTool(moveTool, common.InstrumentedToolHandler("reminders_move", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title, _ := args["title"].(string)
		fromList, _ := args["from_list"].(string)
		toList, _ := args["to_list"].(string)
		if title == "" || fromList == "" || toList == "" {
			return mcp.NewToolResultError("title, from_list and to_list are required"), nil
		}

		if err := sc.RemindersClient().Move(ctx, title, fromList, toList); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Moved reminder %q from %q to %q", title, fromList, toList)), nil
	}))

	return nil
}
