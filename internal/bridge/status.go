package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Authorization states reported by the helper for a privacy scope.
const (
	StatusAuthorized    = "authorized"
	StatusDenied        = "denied"
	StatusRestricted    = "restricted"
	StatusNotDetermined = "notDetermined"
	StatusUnknown       = "unknown"
)

// PermissionStatus is the tool-facing view of one privacy scope.
type PermissionStatus struct {
	Scope         Domain `json:"scope"`
	Status        string `json:"status"`
	PromptAllowed bool   `json:"promptAllowed"`
	Instructions  string `json:"instructions,omitempty"`
}

// PermissionStatus asks the helper for the authorization state of a scope.
// The call bypasses the retry path: a denial should be reported here, not
// re-prompted.
func (b *Bridge) PermissionStatus(ctx context.Context, scope Domain) (PermissionStatus, error) {
	args := ArgumentVector{"--action", "permissions-status", "--domain", string(scope)}

	raw, err := b.invoke(ctx, args)
	if err != nil {
		return PermissionStatus{}, err
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return PermissionStatus{}, &ExecError{Action: args.Action(), Err: errors.New("unexpected result shape")}
	}

	return newPermissionStatus(scope, payload.Status), nil
}

// RequestPermission triggers the OS dialog for the scope, then reports the
// resulting authorization state.
func (b *Bridge) RequestPermission(ctx context.Context, scope Domain) (PermissionStatus, error) {
	if err := b.perms.TriggerPrompt(ctx, scope); err != nil {
		return PermissionStatus{}, err
	}
	return b.PermissionStatus(ctx, scope)
}

func newPermissionStatus(scope Domain, status string) PermissionStatus {
	if status == "" {
		status = StatusUnknown
	}

	ps := PermissionStatus{
		Scope:  scope,
		Status: status,
		// The OS only shows its dialog while the scope is undetermined.
		PromptAllowed: status == StatusNotDetermined,
	}
	if status != StatusAuthorized {
		ps.Instructions = manualInstructions(scope)
	}
	return ps
}

func manualInstructions(scope Domain) string {
	pane := "Reminders"
	if scope == DomainCalendars {
		pane = "Calendars"
	}
	return fmt.Sprintf("Open System Settings > Privacy & Security > %s and allow access for this app, then try again.", pane)
}
