package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"userapp/internal/core/port"
	"userapp/pkg/tracing"
)

// OTELProbe implements Telemetry using OpenTelemetry spans plus the
// application Prometheus counters.
type OTELProbe struct {
	metrics *tracing.AppMetrics
	logger  *slog.Logger
}

func NewOTELProbe(metrics *tracing.AppMetrics, logger *slog.Logger) port.Telemetry {
	return &OTELProbe{
		metrics: metrics,
		logger:  logger,
	}
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}
	standardAttrs = append(standardAttrs, attrs...)

	return tracing.CreateChildSpan(ctx, spanName, standardAttrs)
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := []attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}
	standardAttrs = append(standardAttrs, attrs...)

	return tracing.CreateChildSpan(ctx, spanName, standardAttrs)
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordDatabaseOperation(ctx, operation, entity)
	}

	span := trace.SpanFromContext(ctx)

	if err != nil {
		tracing.AddSpanError(span, err)
	}

	span.SetAttributes(attribute.Int64("repository.duration_ms", duration.Milliseconds()))
}

func (p *OTELProbe) RecordUserOperation(ctx context.Context, operation string) {
	if p.metrics != nil {
		p.metrics.RecordUserOperation(ctx, operation)
	}
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error) {
	span := trace.SpanFromContext(ctx)
	tracing.AddSpanError(span, err)

	if p.logger != nil {
		p.logger.Error("operation failed", "operation", operation, "error", err)
	}
}
