package bridge

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/ekbridge/ekbridge/internal/instrumentation"
	"github.com/ekbridge/ekbridge/internal/logging"
)

// Domain is an OS privacy scope the server requests access to.
type Domain string

// The two privacy scopes macOS distinguishes for this server.
const (
	DomainReminders Domain = "reminders"
	DomainCalendars Domain = "calendars"
)

// ParseDomain validates a scope string from a tool argument.
func ParseDomain(s string) (Domain, error) {
	switch Domain(strings.ToLower(strings.TrimSpace(s))) {
	case DomainReminders:
		return DomainReminders, nil
	case DomainCalendars:
		return DomainCalendars, nil
	}
	return "", fmt.Errorf("unknown permission scope %q (expected %q or %q)", s, DomainReminders, DomainCalendars)
}

// Read-only enumeration snippets, one per domain. Counting is enough to make
// the OS raise its privacy dialog for the corresponding application.
var permissionScripts = map[Domain]string{
	DomainReminders: `tell application "Reminders" to count of lists`,
	DomainCalendars: `tell application "Calendar" to count of calendars`,
}

// DefaultTriggerTimeout bounds the osascript call so an unanswered privacy
// dialog cannot hang the server.
const DefaultTriggerTimeout = 30 * time.Second

// ScriptRunner executes an AppleScript snippet. Swappable in tests.
type ScriptRunner interface {
	RunScript(ctx context.Context, script string) error
}

type osascriptRunner struct{}

func (osascriptRunner) RunScript(ctx context.Context, script string) error {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// PermissionOptions configures a PermissionService.
type PermissionOptions struct {
	// Runner executes the AppleScript snippets (default: osascript).
	Runner ScriptRunner

	// TriggerTimeout bounds each osascript invocation (default: 30s).
	TriggerTimeout time.Duration

	// Logger receives trigger diagnostics (default: slog.Default).
	Logger *slog.Logger

	// Metrics records trigger and de-duplication counts. Optional.
	Metrics *instrumentation.Metrics
}

// PermissionService triggers the macOS privacy dialogs. Concurrent requests
// for the same domain share one in-flight osascript invocation and observe
// the same outcome.
type PermissionService struct {
	runner  ScriptRunner
	timeout time.Duration
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	mu       sync.Mutex
	inflight map[Domain]*trigger
}

// trigger is the completion shared by all callers of one in-flight probe.
// err must be written before done is closed.
type trigger struct {
	done chan struct{}
	err  error
}

// NewPermissionService creates a PermissionService.
func NewPermissionService(opts PermissionOptions) *PermissionService {
	if opts.Runner == nil {
		opts.Runner = osascriptRunner{}
	}
	if opts.TriggerTimeout <= 0 {
		opts.TriggerTimeout = DefaultTriggerTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &PermissionService{
		runner:   opts.Runner,
		timeout:  opts.TriggerTimeout,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		inflight: make(map[Domain]*trigger),
	}
}

// TriggerPrompt runs the domain's enumeration snippet, which makes the OS
// show the permission dialog as a side effect. It reports that the probe ran
// (or failed to run), not whether the user granted access.
//
// If a probe for the same domain is already in flight, the caller joins it
// instead of spawning a second dialog. The in-flight entry is removed when
// the probe settles, regardless of outcome, so a later call starts fresh.
func (s *PermissionService) TriggerPrompt(ctx context.Context, domain Domain) error {
	script, ok := permissionScripts[domain]
	if !ok {
		return fmt.Errorf("unknown permission domain %q", domain)
	}

	s.mu.Lock()
	if t, exists := s.inflight[domain]; exists {
		s.mu.Unlock()
		s.metrics.RecordPermissionDedup(ctx, string(domain))
		s.logger.Debug("joining in-flight permission trigger", logging.Domain(string(domain)))

		select {
		case <-t.done:
			return t.err
		case <-ctx.Done():
			// The probe itself keeps running to its own timeout.
			return ctx.Err()
		}
	}

	t := &trigger{done: make(chan struct{})}
	s.inflight[domain] = t
	s.mu.Unlock()

	t.err = s.run(ctx, domain, script)

	s.mu.Lock()
	delete(s.inflight, domain)
	s.mu.Unlock()

	close(t.done)
	return t.err
}

func (s *PermissionService) run(ctx context.Context, domain Domain, script string) error {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.runner.RunScript(runCtx, script)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.RecordPermissionTrigger(ctx, string(domain), instrumentation.StatusError)
		s.logger.Warn("permission trigger failed",
			logging.Domain(string(domain)),
			logging.Duration(elapsed),
			logging.Err(err),
		)
		return &PermissionTriggerError{Domain: domain, Err: err}
	}

	s.metrics.RecordPermissionTrigger(ctx, string(domain), instrumentation.StatusSuccess)
	s.logger.Debug("permission prompt triggered",
		logging.Domain(string(domain)),
		logging.Duration(elapsed),
	)
	return nil
}
