package calendar

import "fmt"

// Event represents a single calendar event as reported by the helper binary.
type Event struct {
	// ID is the EventKit event identifier, when the helper reports one.
	ID string `json:"id,omitempty"`

	// Title is the event title.
	Title string `json:"title"`

	// StartDate is the start in "YYYY-MM-DD HH:MM:SS" form.
	StartDate string `json:"startDate,omitempty"`

	// EndDate is the end in "YYYY-MM-DD HH:MM:SS" form.
	EndDate string `json:"endDate,omitempty"`

	// Calendar is the calendar the event belongs to.
	Calendar string `json:"calendar,omitempty"`

	// Location is the event location, if set.
	Location string `json:"location,omitempty"`

	// Notes is the free-form notes body.
	Notes string `json:"notes,omitempty"`

	// URL is the event's attached URL, if any.
	URL string `json:"url,omitempty"`

	// IsAllDay reports whether the event spans whole days.
	IsAllDay bool `json:"isAllDay"`
}

// Calendar represents a calendar.
type Calendar struct {
	// Title is the calendar name.
	Title string `json:"title"`
}

// EventsOptions filters an event listing.
type EventsOptions struct {
	// Calendar restricts results to one calendar.
	Calendar string

	// StartDate bounds the window start, "YYYY-MM-DD". Empty means today.
	StartDate string

	// EndDate bounds the window end, "YYYY-MM-DD". Empty means seven days
	// after the window start.
	EndDate string

	// Search filters events by a case-insensitive text match.
	Search string
}

// CreateEventRequest describes an event to create.
type CreateEventRequest struct {
	// Title is required.
	Title string

	// StartDate is required, "YYYY-MM-DD HH:MM:SS".
	StartDate string

	// EndDate is required, "YYYY-MM-DD HH:MM:SS".
	EndDate string

	// Calendar is the target calendar. Empty means the default calendar.
	Calendar string

	// Location is an optional event location.
	Location string

	// Notes is the free-form notes body.
	Notes string

	// AllDay marks the event as spanning whole days.
	AllDay bool
}

// UpdateEventRequest describes changes to an existing event, addressed by its
// identifier.
type UpdateEventRequest struct {
	// ID identifies the event to update. Required.
	ID string

	// Title replaces the title, when non-empty.
	Title string

	// StartDate replaces the start, when non-empty.
	StartDate string

	// EndDate replaces the end, when non-empty.
	EndDate string

	// Calendar moves the event to another calendar, when non-empty.
	Calendar string

	// Location replaces the location, when non-empty.
	Location string

	// Notes replaces the notes body, when non-empty.
	Notes string
}

// CalendarError represents an error from a calendar operation.
type CalendarError struct {
	// Op is the operation that failed (e.g. "create-event").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CalendarError) Error() string {
	return fmt.Sprintf("calendar %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *CalendarError) Unwrap() error {
	return e.Err
}
