package state

import (
	"errors"
	"sync"
)

// Phase is the room's position in the game lifecycle.
type Phase string

const (
	Waiting        Phase = "waiting"
	SettingCakes   Phase = "setting_cakes"
	ChoosingPoison Phase = "choosing_poison"
	Playing        Phase = "playing"
	Finished       Phase = "finished"
)

// ErrTransitionNotAllowed is returned when a phase transition is not allowed.
var ErrTransitionNotAllowed = errors.New("phase transition not allowed")

// transitions lists the legal phase graph. Anything not listed is rejected.
var transitions = map[Phase][]Phase{
	Waiting:        {SettingCakes, ChoosingPoison},
	SettingCakes:   {ChoosingPoison},
	ChoosingPoison: {Playing},
	Playing:        {Finished},
	Finished:       {ChoosingPoison},
}

// Machine guards a room's phase against illegal transitions.
type Machine struct {
	current Phase
	mutex   sync.RWMutex
}

// NewMachine returns a machine in the Waiting phase.
func NewMachine() *Machine {
	return &Machine{current: Waiting}
}

func (m *Machine) Current() Phase {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// Is reports whether the current phase is one of the given phases.
func (m *Machine) Is(phases ...Phase) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, p := range phases {
		if m.current == p {
			return true
		}
	}
	return false
}

// Transition moves to the target phase, or returns ErrTransitionNotAllowed
// and leaves the current phase unchanged.
func (m *Machine) Transition(to Phase) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, allowed := range transitions[m.current] {
		if allowed == to {
			m.current = to
			return nil
		}
	}
	return ErrTransitionNotAllowed
}
