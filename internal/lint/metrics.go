package lint

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("prscore.lint")
	meter  = otel.Meter("prscore.lint")
)

var (
	lintLatency  metric.Float64Histogram
	lintTotal    metric.Int64Counter
	lintFindings metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		lintLatency, err = meter.Float64Histogram(
			"prscore_lint_duration_seconds",
			metric.WithDescription("Duration of linter invocations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		lintTotal, err = meter.Int64Counter(
			"prscore_lint_total",
			metric.WithDescription("Linter invocations by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		lintFindings, err = meter.Int64Counter(
			"prscore_lint_findings_total",
			metric.WithDescription("Diagnostic lines reported by the linter"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

func startLintSpan(ctx context.Context, command, filename string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ExecLinter.Lint",
		trace.WithAttributes(
			attribute.String("lint.command", command),
			attribute.String("lint.file", filename),
		),
	)
}

func setLintSpanResult(span trace.Span, findings int, err error) {
	span.SetAttributes(
		attribute.Int("lint.findings", findings),
		attribute.String("lint.outcome", outcome(err)),
	)
	if err != nil {
		span.RecordError(err)
	}
}

func recordLintMetrics(ctx context.Context, command string, d time.Duration, findings int, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome(err)),
	)
	lintLatency.Record(ctx, d.Seconds(), attrs)
	lintTotal.Add(ctx, 1, attrs)
	if err == nil {
		lintFindings.Add(ctx, int64(findings), metric.WithAttributes(attribute.String("command", command)))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotInstalled):
		return "not_installed"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrFailed):
		return "failed"
	default:
		return "error"
	}
}
