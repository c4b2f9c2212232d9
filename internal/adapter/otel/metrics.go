package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "lexgrid"

// Metrics holds all lexgrid metric instruments.
type Metrics struct {
	TasksSubmitted         metric.Int64Counter
	TasksCompleted         metric.Int64Counter
	TasksFailed            metric.Int64Counter
	Orchestrations         metric.Int64Counter
	OrchestrationDuration  metric.Float64Histogram
	OrchestrationAgentFail metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TasksSubmitted, err = meter.Int64Counter("lexgrid.tasks.submitted",
		metric.WithDescription("Number of tasks submitted"))
	if err != nil {
		return nil, err
	}

	m.TasksCompleted, err = meter.Int64Counter("lexgrid.tasks.completed",
		metric.WithDescription("Number of tasks completed"))
	if err != nil {
		return nil, err
	}

	m.TasksFailed, err = meter.Int64Counter("lexgrid.tasks.failed",
		metric.WithDescription("Number of tasks failed"))
	if err != nil {
		return nil, err
	}

	m.Orchestrations, err = meter.Int64Counter("lexgrid.orchestrations",
		metric.WithDescription("Number of orchestrations run"))
	if err != nil {
		return nil, err
	}

	m.OrchestrationDuration, err = meter.Float64Histogram("lexgrid.orchestration.duration_seconds",
		metric.WithDescription("Orchestration wall-clock duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.OrchestrationAgentFail, err = meter.Int64Counter("lexgrid.orchestration.agent_failures",
		metric.WithDescription("Per-agent failures inside orchestrations"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
