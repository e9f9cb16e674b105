package calendar

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ekbridge/ekbridge/internal/bridge"
)

// Client provides access to macOS Calendar through the CLI bridge.
type Client struct {
	caller bridge.Caller
	logger *slog.Logger
}

// NewClient creates a Client on top of the given bridge.
func NewClient(caller bridge.Caller, logger *slog.Logger) (*Client, error) {
	if caller == nil {
		return nil, errors.New("calendar: caller cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{caller: caller, logger: logger}, nil
}

// Calendars returns all calendars visible to the helper.
func (c *Client) Calendars(ctx context.Context) ([]Calendar, error) {
	args := bridge.ArgumentVector{"--action", "list-calendars"}
	return bridge.Execute[[]Calendar](ctx, c.caller, args)
}

// Events returns events within the window described by opts.
func (c *Client) Events(ctx context.Context, opts EventsOptions) ([]Event, error) {
	args := bridge.ArgumentVector{"--action", "list-events"}
	if opts.Calendar != "" {
		args = append(args, "--calendar", opts.Calendar)
	}
	if opts.StartDate != "" {
		args = append(args, "--start-date", opts.StartDate)
	}
	if opts.EndDate != "" {
		args = append(args, "--end-date", opts.EndDate)
	}
	if opts.Search != "" {
		args = append(args, "--search", opts.Search)
	}

	return bridge.Execute[[]Event](ctx, c.caller, args)
}

// CreateEvent creates a new event and returns it as stored.
func (c *Client) CreateEvent(ctx context.Context, req CreateEventRequest) (Event, error) {
	switch {
	case req.Title == "":
		return Event{}, &CalendarError{Op: "create-event", Err: errors.New("title cannot be empty")}
	case req.StartDate == "" || req.EndDate == "":
		return Event{}, &CalendarError{Op: "create-event", Err: errors.New("start and end date are required")}
	}

	args := bridge.ArgumentVector{
		"--action", "create-event",
		"--title", req.Title,
		"--start-date", req.StartDate,
		"--end-date", req.EndDate,
	}
	if req.Calendar != "" {
		args = append(args, "--calendar", req.Calendar)
	}
	if req.Location != "" {
		args = append(args, "--location", req.Location)
	}
	if req.Notes != "" {
		args = append(args, "--notes", req.Notes)
	}
	if req.AllDay {
		args = append(args, "--all-day")
	}

	return bridge.Execute[Event](ctx, c.caller, args)
}

// UpdateEvent modifies an existing event, addressed by its identifier.
func (c *Client) UpdateEvent(ctx context.Context, req UpdateEventRequest) (Event, error) {
	if req.ID == "" {
		return Event{}, &CalendarError{Op: "update-event", Err: errors.New("event id cannot be empty")}
	}

	args := bridge.ArgumentVector{"--action", "update-event", "--id", req.ID}
	if req.Title != "" {
		args = append(args, "--title", req.Title)
	}
	if req.StartDate != "" {
		args = append(args, "--start-date", req.StartDate)
	}
	if req.EndDate != "" {
		args = append(args, "--end-date", req.EndDate)
	}
	if req.Calendar != "" {
		args = append(args, "--calendar", req.Calendar)
	}
	if req.Location != "" {
		args = append(args, "--location", req.Location)
	}
	if req.Notes != "" {
		args = append(args, "--notes", req.Notes)
	}

	return bridge.Execute[Event](ctx, c.caller, args)
}

// DeleteEvent removes an event by identifier.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return &CalendarError{Op: "delete-event", Err: errors.New("event id cannot be empty")}
	}

	args := bridge.ArgumentVector{"--action", "delete-event", "--id", id}
	_, err := c.caller.Call(ctx, args)
	return err
}
