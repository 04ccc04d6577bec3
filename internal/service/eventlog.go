package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"neuronwatch"
	"neuronwatch/internal/repository"
)

// LogFilter narrows an event log listing. Zero values mean "no constraint".
type LogFilter struct {
	From     time.Time // inclusive
	To       time.Time // inclusive
	Type     string    // event-type tag, e.g. "neuron_heartbeat" or "snapshot"
	Kind     string    // "snapshot" | "event"
	NeuronID string
	Limit    int // keep only the newest Limit matches
}

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// ErrInvalidFilter is wrapped by every filter validation error.
var ErrInvalidFilter = errors.New("invalid log filter")

var (
	errInvalidTimeRange = fmt.Errorf("%w: From must be <= To", ErrInvalidFilter)
	errInvalidLimit     = fmt.Errorf("%w: limit must be >= 0", ErrInvalidFilter)
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeTag trims spaces and lowercases a type or kind filter.
func normalizeTag(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// normalizeAndValidateFilter prepares the filter and validates range and limit.
func normalizeAndValidateFilter(f LogFilter) (LogFilter, error) {
	f.From = normalizeToUTC(f.From)
	f.To = normalizeToUTC(f.To)

	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	if f.Limit < 0 {
		return LogFilter{}, errInvalidLimit
	}
	f.Type = normalizeTag(f.Type)
	f.Kind = normalizeTag(f.Kind)
	f.NeuronID = strings.TrimSpace(f.NeuronID)
	return f, nil
}

func (f LogFilter) matches(e neuronwatch.LogEntry) bool {
	if !f.From.IsZero() && e.ReceivedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.ReceivedAt.After(f.To) {
		return false
	}
	if f.Type != "" && e.EventType != f.Type {
		return false
	}
	if f.Kind != "" && string(e.Kind) != f.Kind {
		return false
	}
	if f.NeuronID != "" && (e.Payload.Event == nil || neuronwatch.NeuronID(e.Payload.Event) != f.NeuronID) {
		return false
	}
	return true
}

// List returns matching entries in arrival order.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]neuronwatch.LogEntry, error) {
	f, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := s.eventRepo.List()
	out := make([]neuronwatch.LogEntry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[len(out)-f.Limit:]
	}
	return out, nil
}
