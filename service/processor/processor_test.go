package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/lockstep/worker"
)

type recorder struct {
	id    int
	calls *[]string
}

func (r *recorder) Cycle(state *int) {
	*r.calls = append(*r.calls, "cycle", string(rune('a'+r.id)))
}

func (r *recorder) Apply(state *int) {
	*state += r.id
	*r.calls = append(*r.calls, "apply", string(rune('a'+r.id)))
}

func TestProcessor_Handle(t *testing.T) {
	var calls []string
	workers := []worker.Worker[int]{&recorder{id: 0, calls: &calls}, &recorder{id: 1, calls: &calls}, &recorder{id: 2, calls: &calls}}
	p := New[int](workers, nil, nil)
	assert.Equal(t, 3, p.Len())

	state := 10
	p.Handle(CycleEvent(&state))
	assert.Equal(t, 10, state)
	p.Handle(ApplyEvent(&state))
	assert.Equal(t, 13, state)
	assert.Equal(t, []string{"cycle", "a", "cycle", "b", "cycle", "c", "apply", "a", "apply", "b", "apply", "c"}, calls)
}

func TestProcessor_HandleInvalidEvent(t *testing.T) {
	p := New[int](nil, nil, nil)
	assert.Panics(t, func() { p.Handle(Event[int]{}) })
}

func TestProcessor_Run(t *testing.T) {
	events := make(chan Event[int], 1)
	acks := make(chan struct{}, 1)
	var calls []string
	p := New[int]([]worker.Worker[int]{&recorder{id: 1, calls: &calls}}, events, acks, WithName("test"), WithLockOSThread(true))
	go p.Run()

	state := 0
	events <- CycleEvent(&state)
	<-acks
	events <- ApplyEvent(&state)
	<-acks
	events <- ApplyEvent(&state)
	<-acks
	assert.Equal(t, 2, state)
	assert.Equal(t, []string{"cycle", "b", "apply", "b", "apply", "b"}, calls)
}

func TestProcessor_RunDisconnected(t *testing.T) {
	events := make(chan Event[int])
	close(events)
	p := New[int](nil, events, make(chan struct{}, 1))
	assert.PanicsWithError(t, ErrDisconnected.Error(), p.Run)
}

func TestEvent_Views(t *testing.T) {
	state := 5
	cycle := CycleEvent(&state)
	apply := ApplyEvent(&state)

	require.Equal(t, PhaseCycle, cycle.Phase())
	require.Equal(t, PhaseApply, apply.Phase())
	assert.Same(t, &state, cycle.Shared())
	assert.Same(t, &state, apply.Exclusive())
	assert.Panics(t, func() { cycle.Exclusive() })
	assert.Panics(t, func() { apply.Shared() })
	assert.Equal(t, "cycle", PhaseCycle.String())
	assert.Equal(t, "apply", PhaseApply.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
