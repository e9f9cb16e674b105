package reminders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ekbridge/ekbridge/internal/bridge"
)

// Client provides access to macOS Reminders through the CLI bridge.
type Client struct {
	caller bridge.Caller
	logger *slog.Logger
}

// NewClient creates a Client on top of the given bridge.
func NewClient(caller bridge.Caller, logger *slog.Logger) (*Client, error) {
	if caller == nil {
		return nil, errors.New("reminders: caller cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{caller: caller, logger: logger}, nil
}

// Lists returns all reminder lists.
func (c *Client) Lists(ctx context.Context) ([]List, error) {
	args := bridge.ArgumentVector{"--action", "list-reminder-lists"}
	return bridge.Execute[[]List](ctx, c.caller, args)
}

// Reminders returns reminders matching the given options.
func (c *Client) Reminders(ctx context.Context, opts ListOptions) ([]Reminder, error) {
	args := bridge.ArgumentVector{"--action", "list-reminders"}
	if opts.List != "" {
		args = append(args, "--list", opts.List)
	}
	if opts.ShowCompleted {
		args = append(args, "--show-completed")
	}
	if opts.Search != "" {
		args = append(args, "--search", opts.Search)
	}
	if opts.DueWithin != "" {
		args = append(args, "--due-within", opts.DueWithin)
	}

	return bridge.Execute[[]Reminder](ctx, c.caller, args)
}

// Create creates a new reminder and returns it as stored.
func (c *Client) Create(ctx context.Context, req CreateRequest) (Reminder, error) {
	if req.Title == "" {
		return Reminder{}, &ReminderError{Op: "create", Err: errors.New("title cannot be empty")}
	}

	args := bridge.ArgumentVector{"--action", "create-reminder", "--title", req.Title}
	if req.DueDate != "" {
		args = append(args, "--due-date", req.DueDate)
	}
	if req.List != "" {
		args = append(args, "--list", req.List)
	}
	if notes := FormatNotes(req.Notes, req.URL); notes != "" {
		args = append(args, "--notes", notes)
	}

	return bridge.Execute[Reminder](ctx, c.caller, args)
}

// Update modifies an existing reminder, addressed by its current title.
func (c *Client) Update(ctx context.Context, req UpdateRequest) (Reminder, error) {
	if req.Title == "" {
		return Reminder{}, &ReminderError{Op: "update", Err: errors.New("title cannot be empty")}
	}

	args := bridge.ArgumentVector{"--action", "update-reminder", "--title", req.Title}
	if req.List != "" {
		args = append(args, "--list", req.List)
	}
	if req.NewTitle != "" {
		args = append(args, "--new-title", req.NewTitle)
	}
	if req.DueDate != "" {
		args = append(args, "--due-date", req.DueDate)
	}
	if notes := FormatNotes(req.Notes, req.URL); notes != "" {
		args = append(args, "--notes", notes)
	}
	if req.Completed != nil {
		args = append(args, "--completed", strconv.FormatBool(*req.Completed))
	}

	return bridge.Execute[Reminder](ctx, c.caller, args)
}

// Delete removes a reminder by title, optionally narrowed to one list.
func (c *Client) Delete(ctx context.Context, title, list string) error {
	if title == "" {
		return &ReminderError{Op: "delete", Err: errors.New("title cannot be empty")}
	}

	args := bridge.ArgumentVector{"--action", "delete-reminder", "--title", title}
	if list != "" {
		args = append(args, "--list", list)
	}

	_, err := c.caller.Call(ctx, args)
	return err
}

// Move transfers a reminder between lists.
func (c *Client) Move(ctx context.Context, title, fromList, toList string) error {
	switch {
	case title == "":
		return &ReminderError{Op: "move", Err: errors.New("title cannot be empty")}
	case fromList == "" || toList == "":
		return &ReminderError{Op: "move", Err: errors.New("both source and target list are required")}
	case fromList == toList:
		return &ReminderError{Op: "move", Err: fmt.Errorf("source and target list are both %q", toList)}
	}

	args := bridge.ArgumentVector{
		"--action", "move-reminder",
		"--title", title,
		"--from-list", fromList,
		"--to-list", toList,
	}

	_, err := c.caller.Call(ctx, args)
	return err
}
