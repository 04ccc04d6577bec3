package service

import (
	"context"

	"neuronwatch"
)

// Monitoring exposes the read-only live view.
type Monitoring interface {
	Status() Status
	Neurons() []neuronwatch.Neuron
	Pulsing() []string
}

// EventLog exposes the capped event log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]neuronwatch.LogEntry, error)
}

// Service aggregates what the presentation layer reads.
type Service struct {
	Monitoring
	EventLog
}

// NewService wires the monitor's stores into the read services.
func NewService(m *Monitor) *Service {
	return &Service{
		Monitoring: m,
		EventLog:   NewEventLogService(m.repos.EventRepo),
	}
}

