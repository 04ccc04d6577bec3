package repository

import (
	"testing"

	"neuronwatch"
)

func neuron(id string) neuronwatch.Neuron {
	return neuronwatch.Neuron{Descriptor: neuronwatch.Descriptor{ID: &id}, Health: neuronwatch.HealthHealthy}
}

func TestNeuronTable_ReplaceAndList(t *testing.T) {
	t.Parallel()

	tbl := NewNeuronTable()
	if got := tbl.List(); got == nil || len(got) != 0 {
		t.Fatalf("new table should list empty, got %+v", got)
	}

	in := []neuronwatch.Neuron{neuron("a"), neuron("b")}
	tbl.Replace(in)
	in[0] = neuron("mutated")

	got := tbl.List()
	if len(got) != 2 || got[0].Identity() != "a" || got[1].Identity() != "b" {
		t.Fatalf("unexpected table: %+v", got)
	}

	got[1] = neuron("z")
	if tbl.List()[1].Identity() != "b" {
		t.Fatalf("List must return a copy")
	}
}

func TestNeuronTable_Update(t *testing.T) {
	t.Parallel()

	tbl := NewNeuronTable()
	tbl.Replace([]neuronwatch.Neuron{neuron("a"), neuron("b"), neuron("a")})

	n := tbl.Update(
		func(x neuronwatch.Neuron) bool { return x.Matches("a") },
		func(x *neuronwatch.Neuron) { x.Health = neuronwatch.HealthStale },
	)
	if n != 2 {
		t.Fatalf("updated %d, want 2", n)
	}
	for _, x := range tbl.List() {
		want := neuronwatch.HealthHealthy
		if x.Identity() == "a" {
			want = neuronwatch.HealthStale
		}
		if x.Health != want {
			t.Fatalf("%s health = %q, want %q", x.Identity(), x.Health, want)
		}
	}

	tbl.Reset()
	if len(tbl.List()) != 0 {
		t.Fatalf("reset should empty the table")
	}
}
