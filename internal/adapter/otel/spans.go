package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "lexgrid"

// StartDispatchSpan starts a span for a single task dispatch.
func StartDispatchSpan(ctx context.Context, taskID, agentID, analysisType string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "dispatch",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
			attribute.String("agent.id", agentID),
			attribute.String("analysis.type", analysisType),
		),
	)
}

// StartOrchestrationSpan starts a span for a multi-agent orchestration.
func StartOrchestrationSpan(ctx context.Context, taskID, analysisType string, agents int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "orchestrate",
		trace.WithAttributes(
			attribute.String("orchestration.id", taskID),
			attribute.String("analysis.type", analysisType),
			attribute.Int("orchestration.agents", agents),
		),
	)
}
