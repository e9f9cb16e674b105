package reminders

import "strings"

// urlLinePrefix marks the URL line appended to a notes body.
const urlLinePrefix = "URL: "

// FormatNotes merges a free-form notes body with an optional URL. The URL is
// appended on its own "URL:" line; appending is idempotent, so re-saving a
// reminder does not stack duplicate URL lines.
func FormatNotes(notes, url string) string {
	notes = strings.TrimSpace(notes)
	if url == "" {
		return notes
	}

	line := urlLinePrefix + url
	if strings.Contains(notes, line) {
		return notes
	}
	if notes == "" {
		return line
	}
	return notes + "\n\n" + line
}
