package repository

import "neuronwatch"

// NeuronRepo holds the current neuron table.
type NeuronRepo interface {
	Replace(neurons []neuronwatch.Neuron)
	// Update calls apply on every neuron for which match is true and returns
	// the number of neurons updated. apply must assign new values rather than
	// mutate slices or pointers reachable from earlier List results.
	Update(match func(neuronwatch.Neuron) bool, apply func(*neuronwatch.Neuron)) int
	List() []neuronwatch.Neuron
	Reset()
}

// EventRepo is the capacity-bounded event log.
type EventRepo interface {
	Append(e neuronwatch.LogEntry) neuronwatch.LogEntry
	List() []neuronwatch.LogEntry
	Len() int
	Reset()
}

type Repository struct {
	NeuronRepo NeuronRepo
	EventRepo  EventRepo
}

func NewRepository(logCapacity int) *Repository {
	return &Repository{
		NeuronRepo: NewNeuronTable(),
		EventRepo:  NewEventRing(logCapacity),
	}
}
