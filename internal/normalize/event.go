package normalize

import (
	"fmt"

	"neuronwatch"
)

// Event normalizes the body of an event frame. Unknown type tags are passed
// through as neuronwatch.UnknownEvent; only a missing tag is an error.
func Event(body map[string]any) (neuronwatch.Event, error) {
	typ, ok := body["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: event without type tag", ErrMalformedFrame)
	}

	neuronID := ModelID(body["neuron_id"])
	switch typ {
	case neuronwatch.EventNeuronRegistered:
		return neuronwatch.NeuronRegistered{Neuron: Neuron(body["neuron"], 1)}, nil
	case neuronwatch.EventNeuronRemoved:
		return neuronwatch.NeuronRemoved{NeuronID: neuronID}, nil
	case neuronwatch.EventNeuronHeartbeat:
		return neuronwatch.NeuronHeartbeat{NeuronID: neuronID, Metrics: body["metrics"]}, nil
	case neuronwatch.EventProvisioningSent:
		return neuronwatch.ProvisioningSent{
			NeuronID: neuronID,
			Command:  Command(firstOf(body, "cmd", "command")),
		}, nil
	case neuronwatch.EventProvisioningResponse:
		return neuronwatch.ProvisioningResponse{NeuronID: neuronID, Response: body["response"]}, nil
	case neuronwatch.EventModelStateChanged:
		return neuronwatch.ModelStateChanged{NeuronID: neuronID, Models: ModelStatuses(body["models"])}, nil
	case neuronwatch.EventCortexShutdownNotice:
		return neuronwatch.CortexShutdownNotice{Reason: optionalString(body["reason"])}, nil
	}

	fields := make(map[string]any, len(body))
	for k, v := range body {
		if k != "type" {
			fields[k] = v
		}
	}
	return neuronwatch.UnknownEvent{Type: typ, Fields: fields}, nil
}
