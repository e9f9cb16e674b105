package server

import (
	"context"
	"errors"
	"sync"

	"github.com/ekbridge/ekbridge/internal/bridge"
	"github.com/ekbridge/ekbridge/internal/calendar"
	"github.com/ekbridge/ekbridge/internal/instrumentation"
	"github.com/ekbridge/ekbridge/internal/reminders"
)

// ServerContext holds the shared state of the MCP server: the CLI bridge,
// the domain clients built on it, and the instrumentation handles.
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	bridge    *bridge.Bridge
	reminders *reminders.Client
	calendar  *calendar.Client
	metrics   *instrumentation.Metrics
	readOnly  bool
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext creates a new server context around an initialized bridge.
func NewServerContext(ctx context.Context, b *bridge.Bridge, readOnly bool) (*ServerContext, error) {
	if b == nil {
		return nil, errors.New("server: bridge cannot be nil")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	remClient, err := reminders.NewClient(b, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	calClient, err := calendar.NewClient(b, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		bridge:    b,
		reminders: remClient,
		calendar:  calClient,
		readOnly:  readOnly,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Bridge returns the CLI bridge.
func (sc *ServerContext) Bridge() *bridge.Bridge {
	return sc.bridge
}

// RemindersClient returns the reminders client.
func (sc *ServerContext) RemindersClient() *reminders.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.reminders
}

// CalendarClient returns the calendar client.
func (sc *ServerContext) CalendarClient() *calendar.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.calendar
}

// ReadOnly reports whether write tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.readOnly
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics attaches a metrics recorder to the server context.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
