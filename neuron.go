package neuronwatch

import (
	"encoding/json"
	"time"
)

// Health values reported by the cortex. The set is open; anything else is passed through.
const (
	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
	HealthStale    = "stale"
	HealthUnknown  = "unknown"
)

// Descriptor is the identity and display metadata of one neuron.
type Descriptor struct {
	ID       *string        `json:"node_id"`
	Label    *string        `json:"label"`
	Metadata map[string]any `json:"metadata"` // e.g. {"backend": "llama.cpp"}
}

// ModelStatus is the provisioning record of one model on a neuron.
type ModelStatus struct {
	ModelID      string       `json:"model_id"`
	LastCommand  *CommandKind `json:"last_command"`
	LastResponse any          `json:"last_response"` // opaque, passed through
	Status       string       `json:"status"`
}

// Neuron is the normalized view of one remote worker.
type Neuron struct {
	Descriptor    Descriptor    `json:"descriptor"`
	LastHeartbeat *Heartbeat    `json:"last_heartbeat"` // nil: no heartbeat yet
	Health        string        `json:"health"`
	Offline       bool          `json:"offline"`
	Models        []ModelStatus `json:"models"`
}

// Identity is the key used to match events against the neuron table:
// the stable id, or the label when the id is absent.
func (n Neuron) Identity() string {
	if n.Descriptor.ID != nil {
		return *n.Descriptor.ID
	}
	if n.Descriptor.Label != nil {
		return *n.Descriptor.Label
	}
	return ""
}

// Matches reports whether id equals either the neuron's identifier or its label.
func (n Neuron) Matches(id string) bool {
	if n.Descriptor.ID != nil && *n.Descriptor.ID == id {
		return true
	}
	return n.Descriptor.Label != nil && *n.Descriptor.Label == id
}

// Snapshot is a complete replacement of the neuron table.
type Snapshot struct {
	Neurons []Neuron `json:"neurons"`
}

const heartbeatUnavailable = "unavailable"

// Heartbeat is a last-heartbeat instant. Unavailable marks a value the cortex sent
// but that could not be interpreted as a point in time.
type Heartbeat struct {
	At          time.Time
	Unavailable bool
}

// HeartbeatAt returns a heartbeat at t, normalized to UTC.
func HeartbeatAt(t time.Time) *Heartbeat {
	return &Heartbeat{At: t.UTC()}
}

// UnavailableHeartbeat returns the explicit "unavailable" marker.
func UnavailableHeartbeat() *Heartbeat {
	return &Heartbeat{Unavailable: true}
}

func (h *Heartbeat) String() string {
	switch {
	case h == nil:
		return "no heartbeat yet"
	case h.Unavailable:
		return heartbeatUnavailable
	default:
		return h.At.Format(time.RFC3339Nano)
	}
}

// MarshalJSON encodes an ISO-8601 string, or "unavailable".
func (h Heartbeat) MarshalJSON() ([]byte, error) {
	if h.Unavailable {
		return json.Marshal(heartbeatUnavailable)
	}
	return json.Marshal(h.At.UTC().Format(time.RFC3339Nano))
}
