package service

import (
	"neuronwatch"
	"neuronwatch/internal/clock"
	"neuronwatch/internal/repository"
)

// Reconciler folds snapshots and events into the neuron table.
//
// Only heartbeat and model-state events patch the table. Registration and
// removal are informational until the next snapshot, which stays the
// authoritative source. Not safe for concurrent use; the Monitor serializes calls.
type Reconciler struct {
	neurons repository.NeuronRepo
	clock   clock.Clock
	loading bool
}

func NewReconciler(neurons repository.NeuronRepo, clk clock.Clock) *Reconciler {
	return &Reconciler{neurons: neurons, clock: clk, loading: true}
}

// ApplySnapshot replaces the table and ends the initial load.
func (r *Reconciler) ApplySnapshot(s neuronwatch.Snapshot) {
	r.neurons.Replace(s.Neurons)
	r.loading = false
}

// ApplyEvent patches the table and returns the identities of the neurons it
// changed, in table order and without repeats. A missing match is not an error.
func (r *Reconciler) ApplyEvent(ev neuronwatch.Event) []string {
	var touched []string
	seen := make(map[string]bool)
	record := func(n *neuronwatch.Neuron) {
		if id := n.Identity(); !seen[id] {
			seen[id] = true
			touched = append(touched, id)
		}
	}

	switch e := ev.(type) {
	case neuronwatch.NeuronHeartbeat:
		// id-or-label match: a colliding label updates every neuron it names
		beat := neuronwatch.HeartbeatAt(r.clock.Now())
		r.neurons.Update(
			func(n neuronwatch.Neuron) bool { return n.Matches(e.NeuronID) },
			func(n *neuronwatch.Neuron) {
				n.LastHeartbeat = beat
				record(n)
			},
		)

	case neuronwatch.ModelStateChanged:
		r.neurons.Update(
			func(n neuronwatch.Neuron) bool { return n.Identity() == e.NeuronID },
			func(n *neuronwatch.Neuron) {
				n.Models = cloneModels(e.Models)
				record(n)
			},
		)
	}
	return touched
}

// Reset empties the table for a fresh connection epoch.
func (r *Reconciler) Reset() {
	r.neurons.Reset()
	r.loading = true
}

// InitialLoad reports whether no snapshot has arrived since the last reset.
func (r *Reconciler) InitialLoad() bool { return r.loading }

func cloneModels(models []neuronwatch.ModelStatus) []neuronwatch.ModelStatus {
	out := make([]neuronwatch.ModelStatus, len(models))
	copy(out, models)
	return out
}
