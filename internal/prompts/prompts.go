package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterPrompts registers the canned planning prompts with the MCP server.
func RegisterPrompts(s *mcpserver.MCPServer) error {
	registerDailyAgenda(s)
	registerTriageOverdue(s)
	registerPlanWeek(s)
	return nil
}

func registerDailyAgenda(s *mcpserver.MCPServer) {
	prompt := mcp.NewPrompt("daily_agenda",
		mcp.WithPromptDescription("Summarize today's events and due reminders"),
		mcp.WithArgument("date",
			mcp.ArgumentDescription("Day to summarize, YYYY-MM-DD (default: today)"),
		),
	)

	s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		date := request.Params.Arguments["date"]

		day := "today"
		window := ""
		if date != "" {
			day = date
			window = fmt.Sprintf(" with start_date and end_date set to %s", date)
		}

		text := fmt.Sprintf(`Build an agenda for %s.

1. Call calendar_list_events%s and collect the day's events in order.
2. Call reminders_list with due_within set to "today" for reminders due that day, and again with due_within "overdue" for anything slipped.
3. Present a single agenda: timed events first, then due reminders, then overdue items. Flag conflicts or back-to-back meetings.`, day, window)

		return mcp.NewGetPromptResult(
			"Daily agenda",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			},
		), nil
	})
}

func registerTriageOverdue(s *mcpserver.MCPServer) {
	prompt := mcp.NewPrompt("triage_overdue",
		mcp.WithPromptDescription("Walk through overdue reminders and decide what to do with each"),
		mcp.WithArgument("list",
			mcp.ArgumentDescription("Restrict triage to one reminder list"),
		),
	)

	s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		list := request.Params.Arguments["list"]

		scope := "all lists"
		filter := `due_within set to "overdue"`
		if list != "" {
			scope = fmt.Sprintf("the %q list", list)
			filter = fmt.Sprintf(`due_within set to "overdue" and list set to %q`, list)
		}

		text := fmt.Sprintf(`Triage the overdue reminders in %s.

1. Call reminders_list with %s.
2. For each overdue reminder, propose one of: reschedule (suggest a concrete new due date), complete now, or drop.
3. Wait for my decision per item before making changes. Apply decisions with reminders_update or reminders_delete where those tools are available; otherwise list the changes for me to make.`, scope, filter)

		return mcp.NewGetPromptResult(
			"Overdue triage",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			},
		), nil
	})
}

func registerPlanWeek(s *mcpserver.MCPServer) {
	prompt := mcp.NewPrompt("plan_week",
		mcp.WithPromptDescription("Plan the coming week from calendar events and open reminders"),
		mcp.WithArgument("start_date",
			mcp.ArgumentDescription("First day of the week to plan, YYYY-MM-DD (default: today)"),
		),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Topic or project to prioritize when slotting tasks"),
		),
	)

	s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		startDate := request.Params.Arguments["start_date"]
		focus := request.Params.Arguments["focus"]

		window := "the next seven days"
		windowArgs := ""
		if startDate != "" {
			window = fmt.Sprintf("the week starting %s", startDate)
			windowArgs = fmt.Sprintf(" with start_date %s", startDate)
		}

		text := fmt.Sprintf(`Plan %s.

1. Call calendar_list_events%s to map out committed time.
2. Call reminders_list with due_within set to "this-week", then once more without a due filter to catch undated tasks.
3. Propose a day-by-day plan that fits tasks around events, keeping mornings for deep work where the calendar allows.`, window, windowArgs)
		if focus != "" {
			text += fmt.Sprintf("\n4. Prioritize work related to %q when choosing what to schedule first.", focus)
		}

		return mcp.NewGetPromptResult(
			"Week plan",
			[]mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			},
		), nil
	})
}
