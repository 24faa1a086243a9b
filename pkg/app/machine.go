package app

import (
	"reflect"
	"sync"
	"time"
)

// Observer receives every published state. dataChanged reports whether
// the durable collections differ from the previous state, so observers
// that persist or sync can skip pure navigation.
type Observer func(s State, dataChanged bool)

// Machine serializes dispatches over a State and fans the results out to
// observers. It is safe for use from multiple goroutines.
type Machine struct {
	mu        sync.Mutex
	state     State
	observers []Observer
}

// NewMachine starts a machine from an initial state.
func NewMachine(initial State) *Machine {
	return &Machine{state: initial}
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers an observer for every future dispatch. Observers
// run on the dispatching goroutine while the machine lock is held, so
// they must not call back into the machine; hand off to a channel or
// goroutine for anything slow.
func (m *Machine) Subscribe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Dispatch reduces one action and publishes the result. Run actions with
// no start time are stamped here so callers never reach for the clock.
func (m *Machine) Dispatch(a Action) State {
	if run, ok := a.(Run); ok && run.At == 0 {
		run.At = time.Now().UnixMilli()
		a = run
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.state
	next := Reduce(prev, a)
	m.state = next

	dataChanged := !reflect.DeepEqual(prev.Categories, next.Categories) ||
		!reflect.DeepEqual(prev.Recipes, next.Recipes)
	for _, fn := range m.observers {
		fn(next, dataChanged)
	}
	return next
}
