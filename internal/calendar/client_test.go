package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekbridge/ekbridge/internal/bridge"
)

// fakeCaller records argument vectors and returns canned results.
type fakeCaller struct {
	calls  []bridge.ArgumentVector
	result json.RawMessage
	err    error
}

func (f *fakeCaller) Call(_ context.Context, args bridge.ArgumentVector) (json.RawMessage, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestNewClientRequiresCaller(t *testing.T) {
	_, err := NewClient(nil, nil)
	assert.Error(t, err)
}

func TestCalendars(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[{"title":"Home"},{"title":"Work"}]`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	got, err := client.Calendars(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Calendar{{Title: "Home"}, {Title: "Work"}}, got)
	assert.Equal(t, bridge.ArgumentVector{"--action", "list-calendars"}, caller.calls[0])
}

func TestEventsOmitsEmptyOptions(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[]`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	_, err = client.Events(context.Background(), EventsOptions{})
	require.NoError(t, err)

	assert.Equal(t, bridge.ArgumentVector{"--action", "list-events"}, caller.calls[0])
}

func TestEventsFullOptions(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`[{"title":"Standup","calendar":"Work","isAllDay":false}]`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	got, err := client.Events(context.Background(), EventsOptions{
		Calendar:  "Work",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-07",
		Search:    "standup",
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Standup", got[0].Title)
	assert.Equal(t, bridge.ArgumentVector{
		"--action", "list-events",
		"--calendar", "Work",
		"--start-date", "2026-09-01",
		"--end-date", "2026-09-07",
		"--search", "standup",
	}, caller.calls[0])
}

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateEventRequest
	}{
		{name: "missing title", req: CreateEventRequest{StartDate: "2026-09-01 09:00:00", EndDate: "2026-09-01 10:00:00"}},
		{name: "missing start", req: CreateEventRequest{Title: "Standup", EndDate: "2026-09-01 10:00:00"}},
		{name: "missing end", req: CreateEventRequest{Title: "Standup", StartDate: "2026-09-01 09:00:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := &fakeCaller{}
			client, err := NewClient(caller, nil)
			require.NoError(t, err)

			_, err = client.CreateEvent(context.Background(), tt.req)

			var calErr *CalendarError
			require.ErrorAs(t, err, &calErr)
			assert.Equal(t, "create-event", calErr.Op)
			assert.Empty(t, caller.calls, "invalid requests must not reach the bridge")
		})
	}
}

func TestCreateEvent(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{"id":"ev-1","title":"Standup"}`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	got, err := client.CreateEvent(context.Background(), CreateEventRequest{
		Title:     "Standup",
		StartDate: "2026-09-01 09:00:00",
		EndDate:   "2026-09-01 09:15:00",
		Calendar:  "Work",
		Location:  "Zoom",
		Notes:     "daily sync",
		AllDay:    false,
	})
	require.NoError(t, err)

	assert.Equal(t, "ev-1", got.ID)
	assert.Equal(t, bridge.ArgumentVector{
		"--action", "create-event",
		"--title", "Standup",
		"--start-date", "2026-09-01 09:00:00",
		"--end-date", "2026-09-01 09:15:00",
		"--calendar", "Work",
		"--location", "Zoom",
		"--notes", "daily sync",
	}, caller.calls[0])
}

func TestCreateEventAllDayFlag(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{"id":"ev-2","title":"Offsite","isAllDay":true}`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	got, err := client.CreateEvent(context.Background(), CreateEventRequest{
		Title:     "Offsite",
		StartDate: "2026-09-03 00:00:00",
		EndDate:   "2026-09-04 00:00:00",
		AllDay:    true,
	})
	require.NoError(t, err)

	assert.True(t, got.IsAllDay)
	assert.Contains(t, caller.calls[0], "--all-day")
}

func TestUpdateEventRequiresID(t *testing.T) {
	caller := &fakeCaller{}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	_, err = client.UpdateEvent(context.Background(), UpdateEventRequest{Title: "Renamed"})

	var calErr *CalendarError
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, "update-event", calErr.Op)
	assert.Empty(t, caller.calls)
}

func TestUpdateEvent(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`{"id":"ev-1","title":"Renamed"}`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	_, err = client.UpdateEvent(context.Background(), UpdateEventRequest{
		ID:       "ev-1",
		Title:    "Renamed",
		Location: "Room 2",
	})
	require.NoError(t, err)

	assert.Equal(t, bridge.ArgumentVector{
		"--action", "update-event",
		"--id", "ev-1",
		"--title", "Renamed",
		"--location", "Room 2",
	}, caller.calls[0])
}

func TestDeleteEvent(t *testing.T) {
	caller := &fakeCaller{result: json.RawMessage(`null`)}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	require.NoError(t, client.DeleteEvent(context.Background(), "ev-1"))
	assert.Equal(t, bridge.ArgumentVector{"--action", "delete-event", "--id", "ev-1"}, caller.calls[0])

	err = client.DeleteEvent(context.Background(), "")
	var calErr *CalendarError
	require.ErrorAs(t, err, &calErr)
	assert.Equal(t, "delete-event", calErr.Op)
}

func TestBridgeErrorsPropagateVerbatim(t *testing.T) {
	caller := &fakeCaller{err: errors.New("Failed to access calendar: not authorized")}
	client, err := NewClient(caller, nil)
	require.NoError(t, err)

	_, err = client.Events(context.Background(), EventsOptions{})
	assert.EqualError(t, err, "Failed to access calendar: not authorized")
}
