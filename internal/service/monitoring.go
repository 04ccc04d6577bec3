package service

import (
	"time"

	"neuronwatch"
)

// Status is the presentation view of the connection lifecycle.
type Status struct {
	State           neuronwatch.ConnState      `json:"state"`
	LastError       string                     `json:"last_error,omitempty"`
	ConnectionID    string                     `json:"connection_id,omitempty"`
	Shutdown        neuronwatch.ShutdownNotice `json:"shutdown"`
	InitialLoad     bool                       `json:"initial_load"`
	Attempts        int                        `json:"attempts"`
	MalformedFrames int                        `json:"malformed_frames"`
	NextRetryAt     *time.Time                 `json:"next_retry_at,omitempty"`
	LogSize         int                        `json:"log_size"`
}

// Status returns a consistent copy of the lifecycle state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{
		State:           m.state,
		LastError:       m.lastErr,
		Shutdown:        m.shutdown,
		InitialLoad:     m.reconciler.InitialLoad(),
		Attempts:        m.attempts,
		MalformedFrames: m.malformed,
		LogSize:         m.repos.EventRepo.Len(),
	}
	if m.current != nil {
		st.ConnectionID = m.current.id
	}
	if m.retry != nil {
		at := m.retryAt
		st.NextRetryAt = &at
	}
	return st
}

// Neurons returns the current table in server order.
func (m *Monitor) Neurons() []neuronwatch.Neuron {
	return m.repos.NeuronRepo.List()
}

// Entries returns the retained log, oldest first.
func (m *Monitor) Entries() []neuronwatch.LogEntry {
	return m.repos.EventRepo.List()
}

// Pulsing returns the neuron identities with a live heartbeat highlight.
func (m *Monitor) Pulsing() []string {
	return m.pulses.Pulsing()
}

// IsPulsing reports whether id has a live heartbeat highlight.
func (m *Monitor) IsPulsing(id string) bool {
	return m.pulses.IsPulsing(id)
}
