package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ekbridge/ekbridge/internal/instrumentation"
	"github.com/ekbridge/ekbridge/internal/logging"
)

// ArgumentVector is the ordered argument list handed to the helper binary.
// The first element is conventionally "--action". It is passed to the
// process as a discrete list, never joined into a shell string.
type ArgumentVector []string

// Action returns the value following "--action", for logging and metrics.
func (v ArgumentVector) Action() string {
	for i, arg := range v {
		if arg == "--action" && i+1 < len(v) {
			return v[i+1]
		}
	}
	return "unknown"
}

// Envelope status values produced by the helper binary.
const (
	envelopeStatusSuccess = "success"
	envelopeStatusError   = "error"
)

// envelope is the top-level JSON object the helper writes to stdout.
type envelope struct {
	Status  string          `json:"status"`
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// Runner spawns the helper binary. Swappable in tests.
type Runner interface {
	Run(ctx context.Context, path string, args []string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, path string, args []string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Caller is the narrow surface domain clients depend on.
type Caller interface {
	Call(ctx context.Context, args ArgumentVector) (json.RawMessage, error)
}

// Options configures a Bridge.
type Options struct {
	// Locator resolves the helper binary. Required.
	Locator *Locator

	// Permissions triggers OS privacy dialogs for the retry path. Required.
	Permissions *PermissionService

	// Runner spawns the helper process (default: os/exec).
	Runner Runner

	// Logger receives invocation diagnostics (default: slog.Default).
	Logger *slog.Logger

	// Metrics records invocation and retry counts. Optional.
	Metrics *instrumentation.Metrics
}

// Bridge shells out to the helper binary and applies the one-shot permission
// retry protocol on top of it.
type Bridge struct {
	locator *Locator
	perms   *PermissionService
	runner  Runner
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// New creates a Bridge.
func New(opts Options) (*Bridge, error) {
	if opts.Locator == nil {
		return nil, errors.New("bridge: locator is required")
	}
	if opts.Permissions == nil {
		return nil, errors.New("bridge: permission service is required")
	}
	if opts.Runner == nil {
		opts.Runner = execRunner{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Bridge{
		locator: opts.Locator,
		perms:   opts.Permissions,
		runner:  opts.Runner,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}, nil
}

// Permissions returns the permission service the bridge retries through.
func (b *Bridge) Permissions() *PermissionService {
	return b.perms
}

// invoke performs a single attempt against the helper binary.
//
// Outcomes:
//   - resolution failure: ValidationError or BinaryNotFoundError, fail fast
//   - spawn failure or non-zero exit: ExecError with stderr attached
//   - unparseable stdout: ExecError with a generic message; the malformed
//     output is not echoed back to the caller
//   - envelope status "error": an error carrying exactly the envelope
//     message, unwrapped, so the retry path can classify it
//   - envelope status "success": the raw result payload
func (b *Bridge) invoke(ctx context.Context, args ArgumentVector) (json.RawMessage, error) {
	path, err := b.locator.Resolve()
	if err != nil {
		return nil, err
	}

	action := args.Action()
	log := b.logger.With(
		logging.Action(action),
		logging.InvocationID(uuid.NewString()),
	)

	start := time.Now()
	stdout, stderr, runErr := b.runner.Run(ctx, path, args)
	elapsed := time.Since(start)

	if runErr != nil {
		b.metrics.RecordCLIInvocation(ctx, action, instrumentation.StatusError, elapsed)
		log.Debug("cli invocation failed",
			logging.Duration(elapsed),
			logging.Err(runErr),
		)
		return nil, &ExecError{
			Action: action,
			Stderr: strings.TrimSpace(string(stderr)),
			Err:    runErr,
		}
	}

	var env envelope
	if err := json.Unmarshal(stdout, &env); err != nil {
		b.metrics.RecordCLIInvocation(ctx, action, instrumentation.StatusError, elapsed)
		return nil, &ExecError{Action: action, Err: errors.New("invalid JSON on stdout")}
	}

	switch env.Status {
	case envelopeStatusSuccess:
		b.metrics.RecordCLIInvocation(ctx, action, instrumentation.StatusSuccess, elapsed)
		log.Debug("cli invocation succeeded", logging.Duration(elapsed))
		return env.Result, nil
	case envelopeStatusError:
		b.metrics.RecordCLIInvocation(ctx, action, instrumentation.StatusError, elapsed)
		// Propagated verbatim; wrapping would break permission classification.
		return nil, errors.New(env.Message)
	default:
		b.metrics.RecordCLIInvocation(ctx, action, instrumentation.StatusError, elapsed)
		return nil, &ExecError{Action: action, Err: fmt.Errorf("unexpected envelope status %q", env.Status)}
	}
}

// Call runs the helper, retrying once after a permission trigger when the
// failure text indicates an OS privacy denial.
//
// At most one retry happens per call. If the retry fails too, the original
// first-attempt error is returned: it names the denied scope and is the
// caller's cue to point the user at manual permission granting.
func (b *Bridge) Call(ctx context.Context, args ArgumentVector) (json.RawMessage, error) {
	result, firstErr := b.invoke(ctx, args)
	if firstErr == nil {
		return result, nil
	}

	domain, ok := ClassifyPermissionError(firstErr)
	if !ok {
		return nil, firstErr
	}

	b.logger.Info("permission denial detected, triggering prompt",
		logging.Action(args.Action()),
		logging.Domain(string(domain)),
	)

	if err := b.perms.TriggerPrompt(ctx, domain); err != nil {
		// The probe was still attempted; the retry below decides the outcome.
		b.logger.Warn("permission trigger failed before retry",
			logging.Domain(string(domain)),
			logging.Err(err),
		)
	}

	result, retryErr := b.invoke(ctx, args)
	if retryErr != nil {
		b.metrics.RecordPermissionRetry(ctx, string(domain), instrumentation.RetryOutcomeFailed)
		return nil, firstErr
	}

	b.metrics.RecordPermissionRetry(ctx, string(domain), instrumentation.RetryOutcomeRecovered)
	return result, nil
}

// ClassifyPermissionError maps a CLI failure to the permission domain its
// message names, or reports that the failure is not permission-related.
//
// Matching is a case-insensitive substring contract with the helper's error
// wording; if the helper rewords its permission errors, the retry path
// silently stops firing.
func ClassifyPermissionError(err error) (Domain, bool) {
	if err == nil {
		return "", false
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "permission") && !strings.Contains(msg, "not authorized") {
		return "", false
	}

	switch {
	case strings.Contains(msg, "reminder"):
		return DomainReminders, true
	case strings.Contains(msg, "calendar"):
		return DomainCalendars, true
	}
	return "", false
}

// Execute invokes the helper through c and decodes the success payload into T.
// No schema validation happens beyond JSON decoding.
func Execute[T any](ctx context.Context, c Caller, args ArgumentVector) (T, error) {
	var out T

	raw, err := c.Call(ctx, args)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ExecError{Action: args.Action(), Err: errors.New("unexpected result shape")}
	}
	return out, nil
}
