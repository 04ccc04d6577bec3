package neuronwatch

import "encoding/json"

// Event type tags carried on the wire.
const (
	EventNeuronRegistered     = "neuron_registered"
	EventNeuronRemoved        = "neuron_removed"
	EventNeuronHeartbeat      = "neuron_heartbeat"
	EventProvisioningSent     = "provisioning_sent"
	EventProvisioningResponse = "provisioning_response"
	EventModelStateChanged    = "model_state_changed"
	EventCortexShutdownNotice = "cortex_shutdown_notice"
)

// Event is one normalized incremental notification. The set of implementations
// is closed; UnknownEvent carries types this client does not understand.
type Event interface {
	EventType() string
	isEvent()
}

type NeuronRegistered struct {
	Neuron Neuron `json:"neuron"`
}

type NeuronRemoved struct {
	NeuronID string `json:"neuron_id"`
}

type NeuronHeartbeat struct {
	NeuronID string `json:"neuron_id"`
	Metrics  any    `json:"metrics"`
}

type ProvisioningSent struct {
	NeuronID string  `json:"neuron_id"`
	Command  Command `json:"cmd"`
}

type ProvisioningResponse struct {
	NeuronID string `json:"neuron_id"`
	Response any    `json:"response"`
}

type ModelStateChanged struct {
	NeuronID string        `json:"neuron_id"`
	Models   []ModelStatus `json:"models"`
}

type CortexShutdownNotice struct {
	Reason *string `json:"reason"`
}

// UnknownEvent passes an unrecognized event through untouched.
type UnknownEvent struct {
	Type   string
	Fields map[string]any
}

func (NeuronRegistered) EventType() string     { return EventNeuronRegistered }
func (NeuronRemoved) EventType() string        { return EventNeuronRemoved }
func (NeuronHeartbeat) EventType() string      { return EventNeuronHeartbeat }
func (ProvisioningSent) EventType() string     { return EventProvisioningSent }
func (ProvisioningResponse) EventType() string { return EventProvisioningResponse }
func (ModelStateChanged) EventType() string    { return EventModelStateChanged }
func (CortexShutdownNotice) EventType() string { return EventCortexShutdownNotice }
func (e UnknownEvent) EventType() string       { return e.Type }

func (NeuronRegistered) isEvent()     {}
func (NeuronRemoved) isEvent()        {}
func (NeuronHeartbeat) isEvent()      {}
func (ProvisioningSent) isEvent()     {}
func (ProvisioningResponse) isEvent() {}
func (ModelStateChanged) isEvent()    {}
func (CortexShutdownNotice) isEvent() {}
func (UnknownEvent) isEvent()         {}

// NeuronID returns the neuron identifier an event refers to, if any.
func NeuronID(e Event) string {
	switch ev := e.(type) {
	case NeuronRegistered:
		return ev.Neuron.Identity()
	case NeuronRemoved:
		return ev.NeuronID
	case NeuronHeartbeat:
		return ev.NeuronID
	case ProvisioningSent:
		return ev.NeuronID
	case ProvisioningResponse:
		return ev.NeuronID
	case ModelStateChanged:
		return ev.NeuronID
	case UnknownEvent:
		if id, ok := ev.Fields["neuron_id"].(string); ok {
			return id
		}
	}
	return ""
}

func (e NeuronRegistered) MarshalJSON() ([]byte, error) {
	type plain NeuronRegistered
	return marshalTagged(e.EventType(), plain(e))
}

func (e NeuronRemoved) MarshalJSON() ([]byte, error) {
	type plain NeuronRemoved
	return marshalTagged(e.EventType(), plain(e))
}

func (e NeuronHeartbeat) MarshalJSON() ([]byte, error) {
	type plain NeuronHeartbeat
	return marshalTagged(e.EventType(), plain(e))
}

func (e ProvisioningSent) MarshalJSON() ([]byte, error) {
	type plain ProvisioningSent
	return marshalTagged(e.EventType(), plain(e))
}

func (e ProvisioningResponse) MarshalJSON() ([]byte, error) {
	type plain ProvisioningResponse
	return marshalTagged(e.EventType(), plain(e))
}

func (e ModelStateChanged) MarshalJSON() ([]byte, error) {
	type plain ModelStateChanged
	return marshalTagged(e.EventType(), plain(e))
}

func (e CortexShutdownNotice) MarshalJSON() ([]byte, error) {
	type plain CortexShutdownNotice
	return marshalTagged(e.EventType(), plain(e))
}

func (e UnknownEvent) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields["type"] = e.Type
	return json.Marshal(fields)
}

// marshalTagged encodes v as an object and adds the "type" discriminator.
func marshalTagged(typ string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	tag, _ := json.Marshal(typ)
	fields["type"] = tag
	return json.Marshal(fields)
}
