package repository

import (
	"testing"
	"time"

	"neuronwatch"
)

func entry(tag string) neuronwatch.LogEntry {
	return neuronwatch.LogEntry{Kind: neuronwatch.KindEvent, EventType: tag}
}

func TestEventRing_KeepsMostRecentInOrder(t *testing.T) {
	t.Parallel()

	r := NewEventRing(DefaultLogCapacity)
	const total = 725
	for i := 0; i < total; i++ {
		r.Append(entry("neuron_heartbeat"))
	}

	got := r.List()
	if len(got) != DefaultLogCapacity {
		t.Fatalf("len = %d, want %d", len(got), DefaultLogCapacity)
	}
	if r.Len() != DefaultLogCapacity {
		t.Fatalf("Len() = %d, want %d", r.Len(), DefaultLogCapacity)
	}
	if first := got[0].ID; first != total-DefaultLogCapacity+1 {
		t.Fatalf("oldest id = %d, want %d", first, total-DefaultLogCapacity+1)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ID != got[i-1].ID+1 {
			t.Fatalf("ids not strictly consecutive at %d: %d after %d", i, got[i].ID, got[i-1].ID)
		}
	}
	if last := got[len(got)-1].ID; last != total {
		t.Fatalf("newest id = %d, want %d", last, total)
	}
}

func TestEventRing_BelowCapacity(t *testing.T) {
	t.Parallel()

	r := NewEventRing(3)
	a := r.Append(entry("a"))
	b := r.Append(entry("b"))

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d,%d; want 1,2", a.ID, b.ID)
	}
	got := r.List()
	if len(got) != 2 || got[0].EventType != "a" || got[1].EventType != "b" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestEventRing_EvictsOldestFirst(t *testing.T) {
	t.Parallel()

	r := NewEventRing(3)
	for _, tag := range []string{"a", "b", "c", "d", "e"} {
		r.Append(entry(tag))
	}
	got := r.List()
	want := []string{"c", "d", "e"}
	for i, tag := range want {
		if got[i].EventType != tag {
			t.Fatalf("entry %d = %q, want %q (all: %+v)", i, got[i].EventType, tag, got)
		}
	}
}

func TestEventRing_StampsReceivedAt(t *testing.T) {
	t.Parallel()

	r := NewEventRing(2)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	stamped := r.Append(entry("x"))
	if stamped.ReceivedAt.IsZero() {
		t.Fatalf("ReceivedAt should default to now")
	}
	kept := r.Append(neuronwatch.LogEntry{ReceivedAt: fixed})
	if !kept.ReceivedAt.Equal(fixed) {
		t.Fatalf("ReceivedAt = %v, want %v", kept.ReceivedAt, fixed)
	}
}

func TestEventRing_ResetKeepsSequence(t *testing.T) {
	t.Parallel()

	r := NewEventRing(4)
	r.Append(entry("a"))
	r.Append(entry("b"))
	r.Reset()

	if r.Len() != 0 || len(r.List()) != 0 {
		t.Fatalf("reset should empty the ring")
	}
	if next := r.Append(entry("c")); next.ID != 3 {
		t.Fatalf("id after reset = %d, want 3", next.ID)
	}
}
