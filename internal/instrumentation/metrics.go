package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrAction  = "action"
	attrStatus  = "status"
	attrDomain  = "domain"
	attrOutcome = "outcome"
	attrTool    = "tool"
)

// Metrics provides methods for recording observability metrics.
// The zero value is a no-op recorder; all Record methods are nil-safe.
type Metrics struct {
	// Native CLI metrics
	cliInvocationsTotal   metric.Int64Counter
	cliInvocationDuration metric.Float64Histogram

	// Permission bridge metrics
	permissionTriggersTotal metric.Int64Counter
	permissionDedupTotal    metric.Int64Counter
	permissionRetriesTotal  metric.Int64Counter

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.cliInvocationsTotal, err = meter.Int64Counter(
		"cli_invocations_total",
		metric.WithDescription("Total number of native CLI invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cli_invocations_total counter: %w", err)
	}

	m.cliInvocationDuration, err = meter.Float64Histogram(
		"cli_invocation_duration_seconds",
		metric.WithDescription("Native CLI invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cli_invocation_duration_seconds histogram: %w", err)
	}

	m.permissionTriggersTotal, err = meter.Int64Counter(
		"permission_triggers_total",
		metric.WithDescription("Total number of OS permission dialog triggers"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission_triggers_total counter: %w", err)
	}

	m.permissionDedupTotal, err = meter.Int64Counter(
		"permission_trigger_dedup_total",
		metric.WithDescription("Permission trigger requests that joined an in-flight trigger"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission_trigger_dedup_total counter: %w", err)
	}

	m.permissionRetriesTotal, err = meter.Int64Counter(
		"permission_retries_total",
		metric.WithDescription("CLI invocations retried after a permission trigger"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission_retries_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"tool_duration_seconds",
		metric.WithDescription("MCP tool invocation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordCLIInvocation records one native CLI invocation.
func (m *Metrics) RecordCLIInvocation(ctx context.Context, action, status string, duration time.Duration) {
	if m == nil || m.cliInvocationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrAction, action),
		attribute.String(attrStatus, status),
	)
	m.cliInvocationsTotal.Add(ctx, 1, attrs)
	m.cliInvocationDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String(attrAction, action)))
}

// RecordPermissionTrigger records one permission dialog trigger attempt.
func (m *Metrics) RecordPermissionTrigger(ctx context.Context, domain, status string) {
	if m == nil || m.permissionTriggersTotal == nil {
		return
	}

	m.permissionTriggersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrDomain, domain),
		attribute.String(attrStatus, status),
	))
}

// RecordPermissionDedup records a trigger request that joined an in-flight one.
func (m *Metrics) RecordPermissionDedup(ctx context.Context, domain string) {
	if m == nil || m.permissionDedupTotal == nil {
		return
	}

	m.permissionDedupTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrDomain, domain),
	))
}

// RecordPermissionRetry records the outcome of a post-trigger CLI retry.
func (m *Metrics) RecordPermissionRetry(ctx context.Context, domain, outcome string) {
	if m == nil || m.permissionRetriesTotal == nil {
		return
	}

	m.permissionRetriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrDomain, domain),
		attribute.String(attrOutcome, outcome),
	))
}

// RecordToolInvocation records one MCP tool invocation.
func (m *Metrics) RecordToolInvocation(ctx context.Context, tool, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrTool, tool),
		attribute.String(attrStatus, status),
	)
	m.toolInvocationsTotal.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String(attrTool, tool)))
}
