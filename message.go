package neuronwatch

import (
	"encoding/json"
	"time"
)

// MessageKind is the top-level framing of a stream frame.
type MessageKind string

const (
	KindSnapshot MessageKind = "snapshot"
	KindEvent    MessageKind = "event"
)

// Message is one normalized frame: exactly one of Snapshot or Event is set.
type Message struct {
	Kind     MessageKind
	Snapshot *Snapshot
	Event    Event
}

// Tag is the human-facing event-type tag used by the event log.
func (m Message) Tag() string {
	if m.Kind == KindEvent && m.Event != nil {
		return m.Event.EventType()
	}
	return string(m.Kind)
}

// MarshalJSON encodes the wire framing, so a normalized message can be re-read by the normalizer.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Kind == KindSnapshot {
		return json.Marshal(struct {
			Kind     MessageKind `json:"kind"`
			Snapshot *Snapshot   `json:"snapshot"`
		}{m.Kind, m.Snapshot})
	}
	return json.Marshal(struct {
		Kind  MessageKind `json:"kind"`
		Event Event       `json:"event"`
	}{m.Kind, m.Event})
}

// ConnState is the state of the stream connection lifecycle.
type ConnState string

const (
	StateConnecting ConnState = "connecting"
	StateOpen       ConnState = "open"
	StatePolling    ConnState = "polling"
	StateClosed     ConnState = "closed"
	StateError      ConnState = "error"
)

// LogEntry is an immutable record of one processed message.
type LogEntry struct {
	ID         uint64      `json:"id"`
	ReceivedAt time.Time   `json:"received_at"`
	Kind       MessageKind `json:"kind"`
	EventType  string      `json:"event_type"`
	Payload    Message     `json:"payload"`
}

// ShutdownNotice is the sticky record of the last cortex_shutdown_notice seen
// on the current connection epoch.
type ShutdownNotice struct {
	Seen   bool      `json:"seen"`
	Reason *string   `json:"reason"`
	At     time.Time `json:"at"`
}
