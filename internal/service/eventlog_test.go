package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"neuronwatch"
	"neuronwatch/internal/repository"
)

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

// normalizeToUTC

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(fixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeTag(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  snapshot ", exp: "snapshot"},
		{name: "lowercase", in: "NEURON_HEARTBEAT", exp: "neuron_heartbeat"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeTag(c.in); got != c.exp {
				t.Fatalf("normalizeTag(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	_, err := normalizeAndValidateFilter(LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}

	_, err = normalizeAndValidateFilter(LogFilter{Limit: -1})
	if !errors.Is(err, errInvalidLimit) {
		t.Fatalf("expected errInvalidLimit; got %v", err)
	}
	if !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter; got %v", err)
	}

	got, err := normalizeAndValidateFilter(LogFilter{
		From:     mustTimeIn(fixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0),
		Type:     " Neuron_Heartbeat ",
		Kind:     "EVENT",
		NeuronID: " n1 ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.From.Equal(time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC)) || got.From.Location() != time.UTC {
		t.Fatalf("from not normalized: %v", got.From)
	}
	if got.Type != "neuron_heartbeat" || got.Kind != "event" || got.NeuronID != "n1" {
		t.Fatalf("tags not normalized: %+v", got)
	}
}

// EventLogService.List

func seededLog(t *testing.T) (*EventLogService, time.Time) {
	t.Helper()

	ring := repository.NewEventRing(repository.DefaultLogCapacity)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []neuronwatch.Message{
		{Kind: neuronwatch.KindSnapshot, Snapshot: &neuronwatch.Snapshot{Neurons: []neuronwatch.Neuron{}}},
		{Kind: neuronwatch.KindEvent, Event: neuronwatch.NeuronHeartbeat{NeuronID: "n1"}},
		{Kind: neuronwatch.KindEvent, Event: neuronwatch.NeuronHeartbeat{NeuronID: "n2"}},
		{Kind: neuronwatch.KindEvent, Event: neuronwatch.ProvisioningSent{NeuronID: "n1", Command: neuronwatch.LoadModel("m")}},
		{Kind: neuronwatch.KindEvent, Event: neuronwatch.NeuronHeartbeat{NeuronID: "n1"}},
	}
	for i, msg := range msgs {
		ring.Append(neuronwatch.LogEntry{
			ReceivedAt: base.Add(time.Duration(i) * time.Second),
			Kind:       msg.Kind,
			EventType:  msg.Tag(),
			Payload:    msg,
		})
	}
	return NewEventLogService(ring), base
}

func ids(entries []neuronwatch.LogEntry) []uint64 {
	out := make([]uint64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestEventLogService_List_Filters(t *testing.T) {
	t.Parallel()

	svc, base := seededLog(t)

	cases := []struct {
		name string
		f    LogFilter
		want []uint64
	}{
		{"no filter", LogFilter{}, []uint64{1, 2, 3, 4, 5}},
		{"type", LogFilter{Type: "NEURON_HEARTBEAT"}, []uint64{2, 3, 5}},
		{"kind snapshot", LogFilter{Kind: "snapshot"}, []uint64{1}},
		{"neuron", LogFilter{NeuronID: "n1"}, []uint64{2, 4, 5}},
		{"inclusive range", LogFilter{From: base.Add(time.Second), To: base.Add(3 * time.Second)}, []uint64{2, 3, 4}},
		{"tail limit", LogFilter{Type: "neuron_heartbeat", Limit: 2}, []uint64{3, 5}},
		{"limit larger than matches", LogFilter{Kind: "event", Limit: 50}, []uint64{2, 3, 4, 5}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.List(context.Background(), tc.f)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotIDs := ids(got)
			if len(gotIDs) != len(tc.want) {
				t.Fatalf("ids = %v, want %v", gotIDs, tc.want)
			}
			for i := range tc.want {
				if gotIDs[i] != tc.want[i] {
					t.Fatalf("ids = %v, want %v", gotIDs, tc.want)
				}
			}
		})
	}
}

func TestEventLogService_List_ValidationError(t *testing.T) {
	t.Parallel()

	svc, _ := seededLog(t)
	_, err := svc.List(context.Background(), LogFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}
}

func TestEventLogService_List_CancelledContext(t *testing.T) {
	t.Parallel()

	svc, _ := seededLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.List(ctx, LogFilter{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}
