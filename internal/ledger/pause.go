package ledger

import (
	dErrors "ticketd/pkg/domain-errors"
	"ticketd/pkg/domain"
)

// PauseGate is the global switch blocking value-moving operations while
// leaving administration (pause, unpause, role grants) and treasury recovery
// available. Pausing an already-paused ledger is an explicit error rather
// than a no-op so operators notice redundant toggles.
type PauseGate struct {
	access *AccessController
	paused bool
}

func newPauseGate(access *AccessController) *PauseGate {
	return &PauseGate{access: access}
}

// IsPaused reports the gate state. Pure read.
func (g *PauseGate) IsPaused() bool {
	return g.paused
}

// Pause engages the gate. Owner only.
func (g *PauseGate) Pause(caller domain.Address) ([]Event, error) {
	if err := g.access.requireOwner(caller); err != nil {
		return nil, err
	}
	if g.paused {
		return nil, dErrors.New(dErrors.CodeInvalidState, "ledger is already paused")
	}
	g.paused = true
	return []Event{Paused{}}, nil
}

// Unpause releases the gate. Owner only.
func (g *PauseGate) Unpause(caller domain.Address) ([]Event, error) {
	if err := g.access.requireOwner(caller); err != nil {
		return nil, err
	}
	if !g.paused {
		return nil, dErrors.New(dErrors.CodeInvalidState, "ledger is not paused")
	}
	g.paused = false
	return []Event{Unpaused{}}, nil
}

// requireActive rejects value-moving operations while the gate is set.
func (g *PauseGate) requireActive() error {
	if g.paused {
		return dErrors.New(dErrors.CodePaused, "ledger is paused")
	}
	return nil
}
