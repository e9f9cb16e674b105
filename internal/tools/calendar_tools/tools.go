package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ekbridge/ekbridge/internal/calendar"
	"github.com/ekbridge/ekbridge/internal/server"
	"github.com/ekbridge/ekbridge/internal/tools/common"
)

// RegisterCalendarTools registers all Calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := registerReadTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar read tools: %w", err)
	}

	if !readOnly {
		if err := registerWriteTools(s, sc); err != nil {
			return fmt.Errorf("failed to register calendar write tools: %w", err)
		}
	}

	return nil
}

// registerReadTools registers the tools that never modify events
func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandler("calendar_list_calendars", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calendars, err := sc.CalendarClient().Calendars(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(calendars, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events within a date window"),
		mcp.WithString("calendar",
			mcp.Description("Restrict results to one calendar"),
		),
		mcp.WithString("start_date",
			mcp.Description("Window start, YYYY-MM-DD (default: today)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Window end, YYYY-MM-DD (default: seven days after the start)"),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text to match against titles and notes"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandler("calendar_list_events", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		opts := calendar.EventsOptions{}
		if v, ok := args["calendar"].(string); ok {
			opts.Calendar = v
		}
		if v, ok := args["start_date"].(string); ok {
			opts.StartDate = v
		}
		if v, ok := args["end_date"].(string); ok {
			opts.EndDate = v
		}
		if v, ok := args["search"].(string); ok {
			opts.Search = v
		}

		events, err := sc.CalendarClient().Events(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(events, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	return nil
}

// registerWriteTools registers the tools that create, modify or delete
// events. They are only available when the server runs with --yolo.
func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a new calendar event"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Event start, 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("Event end, 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("calendar",
			mcp.Description("Target calendar (default: the default calendar)"),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes body"),
		),
		mcp.WithBoolean("all_day",
			mcp.Description("Mark the event as all-day (default: false)"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandler("calendar_create_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		title, _ := args["title"].(string)
		startDate, _ := args["start_date"].(string)
		endDate, _ := args["end_date"].(string)
		if title == "" || startDate == "" || endDate == "" {
			return mcp.NewToolResultError("title, start_date and end_date are required"), nil
		}

		req := calendar.CreateEventRequest{
			Title:     title,
			StartDate: startDate,
			EndDate:   endDate,
		}
		if v, ok := args["calendar"].(string); ok {
			req.Calendar = v
		}
		if v, ok := args["location"].(string); ok {
			req.Location = v
		}
		if v, ok := args["notes"].(string); ok {
			req.Notes = v
		}
		if v, ok := args["all_day"].(bool); ok {
			req.AllDay = v
		}

		created, err := sc.CalendarClient().CreateEvent(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(created, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	updateEventTool := mcp.NewTool("calendar_update_event",
		mcp.WithDescription("Update an existing calendar event"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the event to update"),
		),
		mcp.WithString("title",
			mcp.Description("New event title"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start, 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("end_date",
			mcp.Description("New end, 'YYYY-MM-DD HH:MM:SS'"),
		),
		mcp.WithString("calendar",
			mcp.Description("Move the event to this calendar"),
		),
		mcp.WithString("location",
			mcp.Description("New event location"),
		),
		mcp.WithString("notes",
			mcp.Description("New notes body"),
		),
	)

	s.AddTool(updateEventTool, common.InstrumentedToolHandler("calendar_update_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		id, ok := args["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		req := calendar.UpdateEventRequest{ID: id}
		if v, ok := args["title"].(string); ok {
			req.Title = v
		}
		if v, ok := args["start_date"].(string); ok {
			req.StartDate = v
		}
		if v, ok := args["end_date"].(string); ok {
			req.EndDate = v
		}
		if v, ok := args["calendar"].(string); ok {
			req.Calendar = v
		}
		if v, ok := args["location"].(string); ok {
			req.Location = v
		}
		if v, ok := args["notes"].(string); ok {
			req.Notes = v
		}

		updated, err := sc.CalendarClient().UpdateEvent(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, _ := json.MarshalIndent(updated, "", "  ")
		return mcp.NewToolResultText(string(result)), nil
	}))

	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event"),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Identifier of the event to delete"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandler("calendar_delete_event", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		id, ok := args["id"].(string)
		if !ok || id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		if err := sc.CalendarClient().DeleteEvent(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Deleted event %q", id)), nil
	}))

	return nil
}
