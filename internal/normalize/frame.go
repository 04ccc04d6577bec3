// Package normalize translates loosely-typed stream frames, in every protocol
// shape the cortex has shipped, into the strict types of package neuronwatch.
//
// It is the only code allowed to inspect untyped input. Every function is pure.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	"neuronwatch"
)

// ErrMalformedFrame reports a frame that is not JSON or lacks snapshot/event framing.
var ErrMalformedFrame = errors.New("malformed frame")

// ParseFrame decodes one text frame and normalizes it.
func ParseFrame(data []byte) (neuronwatch.Message, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return neuronwatch.Message{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return Message(raw)
}

// Message normalizes an already-decoded frame.
func Message(raw any) (neuronwatch.Message, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return neuronwatch.Message{}, fmt.Errorf("%w: top level is %T, want object", ErrMalformedFrame, raw)
	}

	kind, _ := obj["kind"].(string)
	switch neuronwatch.MessageKind(kind) {
	case neuronwatch.KindSnapshot:
		body, ok := obj["snapshot"].(map[string]any)
		if !ok {
			return neuronwatch.Message{}, fmt.Errorf("%w: snapshot frame without snapshot object", ErrMalformedFrame)
		}
		snap := Snapshot(body)
		return neuronwatch.Message{Kind: neuronwatch.KindSnapshot, Snapshot: &snap}, nil

	case neuronwatch.KindEvent:
		body, ok := obj["event"].(map[string]any)
		if !ok {
			return neuronwatch.Message{}, fmt.Errorf("%w: event frame without event object", ErrMalformedFrame)
		}
		ev, err := Event(body)
		if err != nil {
			return neuronwatch.Message{}, err
		}
		return neuronwatch.Message{Kind: neuronwatch.KindEvent, Event: ev}, nil

	default:
		return neuronwatch.Message{}, fmt.Errorf("%w: unknown kind %q", ErrMalformedFrame, kind)
	}
}

// helpers

func asObject(v any) map[string]any {
	if obj, ok := v.(map[string]any); ok {
		return obj
	}
	return map[string]any{}
}

func firstOf(obj map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
