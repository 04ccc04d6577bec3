package repository

import (
	"sync"

	"neuronwatch"
)

// NeuronTable is an in-memory NeuronRepo. Safe for concurrent use.
type NeuronTable struct {
	mu      sync.RWMutex
	neurons []neuronwatch.Neuron
}

func NewNeuronTable() *NeuronTable {
	return &NeuronTable{neurons: []neuronwatch.Neuron{}}
}

// Replace swaps the whole table in one step.
func (t *NeuronTable) Replace(neurons []neuronwatch.Neuron) {
	next := make([]neuronwatch.Neuron, len(neurons))
	copy(next, neurons)

	t.mu.Lock()
	t.neurons = next
	t.mu.Unlock()
}

func (t *NeuronTable) Update(match func(neuronwatch.Neuron) bool, apply func(*neuronwatch.Neuron)) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	updated := 0
	for i := range t.neurons {
		if match(t.neurons[i]) {
			apply(&t.neurons[i])
			updated++
		}
	}
	return updated
}

// List returns a copy of the table in server order.
func (t *NeuronTable) List() []neuronwatch.Neuron {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]neuronwatch.Neuron, len(t.neurons))
	copy(out, t.neurons)
	return out
}

func (t *NeuronTable) Reset() {
	t.mu.Lock()
	t.neurons = []neuronwatch.Neuron{}
	t.mu.Unlock()
}
