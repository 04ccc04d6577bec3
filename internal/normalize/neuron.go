package normalize

import (
	"fmt"

	"neuronwatch"
)

// Snapshot normalizes the body of a snapshot frame. Each entry may be a
// structured neuron (carrying "descriptor") or a flat legacy descriptor.
func Snapshot(body map[string]any) neuronwatch.Snapshot {
	list, _ := body["neurons"].([]any)
	neurons := make([]neuronwatch.Neuron, 0, len(list))
	for i, entry := range list {
		neurons = append(neurons, Neuron(entry, i+1))
	}
	return neuronwatch.Snapshot{Neurons: neurons}
}

// Neuron normalizes one neuron entry. position is the 1-based index used to
// synthesize a label for legacy entries that carry neither label nor id.
func Neuron(raw any, position int) neuronwatch.Neuron {
	obj := asObject(raw)
	if d, ok := obj["descriptor"]; ok {
		return neuronwatch.Neuron{
			Descriptor:    descriptor(asObject(d)),
			LastHeartbeat: Heartbeat(obj["last_heartbeat"]),
			Health:        stringOr(obj["health"], neuronwatch.HealthUnknown),
			Offline:       obj["offline"] == true,
			Models:        ModelStatuses(obj["models"]),
		}
	}

	desc := descriptor(obj)
	if desc.Label == nil {
		label := fmt.Sprintf("Neuron #%d", position)
		if desc.ID != nil {
			label = *desc.ID
		}
		desc.Label = &label
	}
	return neuronwatch.Neuron{
		Descriptor:    desc,
		LastHeartbeat: Heartbeat(obj["last_heartbeat"]),
		Health:        neuronwatch.HealthUnknown,
		Models:        []neuronwatch.ModelStatus{},
	}
}

func descriptor(obj map[string]any) neuronwatch.Descriptor {
	meta, ok := obj["metadata"].(map[string]any)
	if !ok {
		meta = map[string]any{}
	}
	return neuronwatch.Descriptor{
		ID:       identifier(firstOf(obj, "node_id", "id", "neuron_id")),
		Label:    optionalString(obj["label"]),
		Metadata: meta,
	}
}

// ModelStatuses normalizes a model list, keeping server order. Entries that
// are not objects are dropped.
func ModelStatuses(v any) []neuronwatch.ModelStatus {
	list, _ := v.([]any)
	out := make([]neuronwatch.ModelStatus, 0, len(list))
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, neuronwatch.ModelStatus{
			ModelID:      ModelID(firstOf(obj, "model_id", "model")),
			LastCommand:  lastCommandKind(obj["last_command"]),
			LastResponse: obj["last_response"],
			Status:       stringOr(firstOf(obj, "status", "effective_status"), neuronwatch.HealthUnknown),
		})
	}
	return out
}

func lastCommandKind(v any) *neuronwatch.CommandKind {
	switch cmd := v.(type) {
	case nil:
		return nil
	case string:
		kind, ok := commandKind(cmd)
		if !ok {
			kind = neuronwatch.CommandKind(cmd)
		}
		return &kind
	default:
		kind := Command(cmd).Kind
		return &kind
	}
}
