package bridge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRunner replays canned helper responses and records each argv.
type scriptedRunner struct {
	responses []runnerResponse
	argvs     [][]string
}

type runnerResponse struct {
	stdout string
	stderr string
	err    error
}

func (r *scriptedRunner) Run(ctx context.Context, path string, args []string) ([]byte, []byte, error) {
	r.argvs = append(r.argvs, args)

	if len(r.responses) == 0 {
		return nil, nil, errors.New("scriptedRunner: no responses left")
	}
	resp := r.responses[0]
	r.responses = r.responses[1:]
	return []byte(resp.stdout), []byte(resp.stderr), resp.err
}

// recordingScriptRunner records the snippets the permission bridge ran.
type recordingScriptRunner struct {
	scripts []string
	err     error
}

func (r *recordingScriptRunner) RunScript(ctx context.Context, script string) error {
	r.scripts = append(r.scripts, script)
	return r.err
}

func newTestBridge(t *testing.T, runner Runner, script ScriptRunner) *Bridge {
	t.Helper()

	if script == nil {
		script = &recordingScriptRunner{}
	}
	b, err := New(Options{
		Locator:     NewLocator(LocatorConfig{Path: writeFakeBinary(t, t.TempDir(), "eventkit-cli", 64)}),
		Permissions: NewPermissionService(PermissionOptions{Runner: script}),
		Runner:      runner,
	})
	require.NoError(t, err)
	return b
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{Locator: NewLocator(LocatorConfig{})})
	require.Error(t, err)
}

func TestCallSuccessEnvelope(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"success","result":{"id":"123"}}`},
	}}
	b := newTestBridge(t, runner, nil)

	args := ArgumentVector{"--action", "create-reminder", "--title", "Buy milk"}
	result, err := Execute[struct {
		ID string `json:"id"`
	}](context.Background(), b, args)

	require.NoError(t, err)
	assert.Equal(t, "123", result.ID)
	require.Len(t, runner.argvs, 1)
	assert.Equal(t, []string(args), runner.argvs[0])
}

func TestCallErrorEnvelopePropagatedVerbatim(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"error","message":"Failed to read reminder"}`},
	}}
	b := newTestBridge(t, runner, nil)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-reminders"})
	require.Error(t, err)
	assert.Equal(t, "Failed to read reminder", err.Error())
}

func TestCallInvalidJSONIsGenericFailure(t *testing.T) {
	malformed := "Segmentation fault: core dumped {not json"
	runner := &scriptedRunner{responses: []runnerResponse{{stdout: malformed}}}
	b := newTestBridge(t, runner, nil)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-reminders"})
	require.Error(t, err)

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "invalid JSON")
	assert.NotContains(t, err.Error(), "Segmentation fault", "malformed output must not be echoed")
}

func TestCallProcessFailureIncludesStderr(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stderr: "dyld: library not loaded", err: errors.New("exit status 1")},
	}}
	b := newTestBridge(t, runner, nil)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-events"})
	require.Error(t, err)

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Contains(t, err.Error(), "dyld: library not loaded")
}

func TestCallUnexpectedEnvelopeStatus(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"partial","result":{}}`},
	}}
	b := newTestBridge(t, runner, nil)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-events"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected envelope status "partial"`)
}

func TestCallBinaryResolutionFailsFast(t *testing.T) {
	runner := &scriptedRunner{}
	b, err := New(Options{
		Locator:     NewLocator(LocatorConfig{SearchRoots: []string{t.TempDir()}}),
		Permissions: NewPermissionService(PermissionOptions{Runner: &recordingScriptRunner{}}),
		Runner:      runner,
	})
	require.NoError(t, err)

	_, err = b.Call(context.Background(), ArgumentVector{"--action", "list-reminders"})
	require.Error(t, err)

	var nfErr *BinaryNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Empty(t, runner.argvs, "helper must not be spawned without a resolved binary")
}

func TestCallRetriesOnceAfterReminderPermissionDenial(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"error","message":"Reminder permission denied"}`},
		{stdout: `{"status":"success","result":[{"title":"Buy milk"}]}`},
	}}
	script := &recordingScriptRunner{}
	b := newTestBridge(t, runner, script)

	args := ArgumentVector{"--action", "list-reminders"}
	result, err := b.Call(context.Background(), args)

	require.NoError(t, err)
	assert.Contains(t, string(result), "Buy milk")

	require.Len(t, script.scripts, 1, "permission bridge must be invoked exactly once")
	assert.Contains(t, script.scripts[0], `"Reminders"`)

	require.Len(t, runner.argvs, 2, "exactly one retry")
	assert.Equal(t, runner.argvs[0], runner.argvs[1], "retry reuses the same argument vector")
}

func TestCallRetryFailureSurfacesOriginalError(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"error","message":"Calendar permission denied"}`},
		{stdout: `{"status":"error","message":"second failure with less context"}`},
	}}
	script := &recordingScriptRunner{}
	b := newTestBridge(t, runner, script)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-events"})
	require.Error(t, err)
	assert.Equal(t, "Calendar permission denied", err.Error(), "original first-attempt error must win")

	require.Len(t, script.scripts, 1)
	assert.Contains(t, script.scripts[0], `"Calendar"`)
	assert.Len(t, runner.argvs, 2, "no further retries after the one-shot retry")
}

func TestCallTriggerFailureStillRetries(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"error","message":"Reminder permission denied"}`},
		{stdout: `{"status":"success","result":null}`},
	}}
	script := &recordingScriptRunner{err: errors.New("osascript timed out")}
	b := newTestBridge(t, runner, script)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-reminders"})
	require.NoError(t, err, "a failed trigger still counts as an attempted probe")
	assert.Len(t, runner.argvs, 2)
}

func TestCallNonPermissionErrorIsNotRetried(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"error","message":"No reminder list named Chores"}`},
	}}
	script := &recordingScriptRunner{}
	b := newTestBridge(t, runner, script)

	_, err := b.Call(context.Background(), ArgumentVector{"--action", "list-reminders"})
	require.Error(t, err)
	assert.Equal(t, "No reminder list named Chores", err.Error())
	assert.Empty(t, script.scripts, "no permission trigger for ordinary failures")
	assert.Len(t, runner.argvs, 1)
}

func TestClassifyPermissionError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantDomain Domain
		wantMatch  bool
	}{
		{
			name:       "reminder permission denied",
			err:        errors.New("Reminder permission denied"),
			wantDomain: DomainReminders,
			wantMatch:  true,
		},
		{
			name:       "calendar permission denied",
			err:        errors.New("Calendar permission denied"),
			wantDomain: DomainCalendars,
			wantMatch:  true,
		},
		{
			name:       "case insensitive",
			err:        errors.New("PERMISSION TO ACCESS REMINDERS WAS REFUSED"),
			wantDomain: DomainReminders,
			wantMatch:  true,
		},
		{
			name:       "not authorized wording",
			err:        errors.New("not authorized to read calendar events"),
			wantDomain: DomainCalendars,
			wantMatch:  true,
		},
		{
			name: "mentions reminder without permission context",
			err:  errors.New("reminder not found"),
		},
		{
			name: "permission error without a known domain",
			err:  errors.New("permission denied: contacts"),
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
		},
		{
			name: "nil error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			domain, ok := ClassifyPermissionError(tt.err)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantDomain, domain)
			}
		})
	}
}

func TestExecuteDecodesTypedPayloads(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"success","result":[{"title":"Groceries"},{"title":"Work"}]}`},
	}}
	b := newTestBridge(t, runner, nil)

	type list struct {
		Title string `json:"title"`
	}
	lists, err := Execute[[]list](context.Background(), b, ArgumentVector{"--action", "list-reminder-lists"})
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Groceries", lists[0].Title)
}

func TestExecuteNullResultYieldsZeroValue(t *testing.T) {
	runner := &scriptedRunner{responses: []runnerResponse{
		{stdout: `{"status":"success","result":null}`},
	}}
	b := newTestBridge(t, runner, nil)

	out, err := Execute[map[string]string](context.Background(), b, ArgumentVector{"--action", "delete-reminder"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestArgumentVectorAction(t *testing.T) {
	tests := []struct {
		name string
		args ArgumentVector
		want string
	}{
		{
			name: "leading action",
			args: ArgumentVector{"--action", "list-reminders", "--list", "Groceries"},
			want: "list-reminders",
		},
		{
			name: "missing action",
			args: ArgumentVector{"--list", "Groceries"},
			want: "unknown",
		},
		{
			name: "dangling flag",
			args: ArgumentVector{"--action"},
			want: "unknown",
		},
		{
			name: "empty vector",
			args: nil,
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args.Action(); got != tt.want {
				t.Errorf("Action() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorMessagesNameTheBinary(t *testing.T) {
	err := &ExecError{Action: "list-reminders", Err: errors.New("spawn failed")}
	if !strings.Contains(err.Error(), "eventkit-cli") {
		t.Errorf("ExecError should name the binary, got %q", err.Error())
	}
}
