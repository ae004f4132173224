package processor

import "fmt"

// Phase identifies the view carried by an Event.
type Phase uint8

const (
	// PhaseCycle carries a shared, read-only view of the state.
	PhaseCycle Phase = iota + 1
	// PhaseApply carries the exclusive, read-write view of the state.
	PhaseApply
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCycle:
		return "cycle"
	case PhaseApply:
		return "apply"
	}
	return fmt.Sprintf("phase(%d)", p)
}

// Event is the only message ever sent to a Processor. The referenced state
// stays valid until the processor acknowledges the event.
type Event[S any] struct {
	phase Phase
	state *S
}

// CycleEvent returns an event carrying a shared view of state.
func CycleEvent[S any](state *S) Event[S] {
	return Event[S]{phase: PhaseCycle, state: state}
}

// ApplyEvent returns an event carrying the exclusive view of state.
func ApplyEvent[S any](state *S) Event[S] {
	return Event[S]{phase: PhaseApply, state: state}
}

// Phase returns the event phase.
func (e Event[S]) Phase() Phase {
	return e.phase
}

// Shared returns the shared view; it panics for any other phase.
func (e Event[S]) Shared() *S {
	if e.phase != PhaseCycle {
		panic(fmt.Errorf("%w: shared view requested from %v event", ErrInvalidEvent, e.phase))
	}
	return e.state
}

// Exclusive returns the exclusive view; it panics for any other phase.
func (e Event[S]) Exclusive() *S {
	if e.phase != PhaseApply {
		panic(fmt.Errorf("%w: exclusive view requested from %v event", ErrInvalidEvent, e.phase))
	}
	return e.state
}
