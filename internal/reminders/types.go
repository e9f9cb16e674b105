package reminders

import "fmt"

// Reminder represents a single reminder as reported by the helper binary.
type Reminder struct {
	// ExternalID is the EventKit identifier, when the helper reports one.
	ExternalID string `json:"externalId,omitempty"`

	// Title is the reminder title.
	Title string `json:"title"`

	// DueDate is the due date in "YYYY-MM-DD HH:MM:SS" form, if set.
	DueDate string `json:"dueDate,omitempty"`

	// Notes is the free-form notes body, including any appended URL line.
	Notes string `json:"notes,omitempty"`

	// URL is the reminder's attached URL, if any.
	URL string `json:"url,omitempty"`

	// List is the reminder list the reminder belongs to.
	List string `json:"list,omitempty"`

	// IsCompleted reports whether the reminder is checked off.
	IsCompleted bool `json:"isCompleted"`
}

// List represents a reminder list.
type List struct {
	// Title is the list name.
	Title string `json:"title"`
}

// ListOptions filters a reminder listing.
type ListOptions struct {
	// List restricts results to one reminder list.
	List string

	// ShowCompleted includes completed reminders in the results.
	ShowCompleted bool

	// Search filters reminders by a case-insensitive text match.
	Search string

	// DueWithin restricts results to a due window, e.g. "today",
	// "tomorrow", "this-week", "overdue", "no-date".
	DueWithin string
}

// CreateRequest describes a reminder to create.
type CreateRequest struct {
	// Title is required.
	Title string

	// DueDate is an optional due date, "YYYY-MM-DD" or
	// "YYYY-MM-DD HH:MM:SS".
	DueDate string

	// List is the target reminder list. Empty means the default list.
	List string

	// Notes is the free-form notes body.
	Notes string

	// URL is appended to the notes; Reminders has no first-class URL field
	// the helper can set reliably.
	URL string
}

// UpdateRequest describes changes to an existing reminder, addressed by its
// current title.
type UpdateRequest struct {
	// Title identifies the reminder to update. Required.
	Title string

	// List narrows the lookup to one reminder list.
	List string

	// NewTitle renames the reminder, when non-empty.
	NewTitle string

	// DueDate replaces the due date, when non-empty.
	DueDate string

	// Notes replaces the notes body, when non-empty.
	Notes string

	// URL is appended to the notes, when non-empty.
	URL string

	// Completed sets the completion state, when non-nil.
	Completed *bool
}

// ReminderError represents an error from a reminders operation.
type ReminderError struct {
	// Op is the operation that failed (e.g. "create", "move").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	return fmt.Sprintf("reminders %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ReminderError) Unwrap() error {
	return e.Err
}
