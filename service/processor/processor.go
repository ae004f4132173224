package processor

import (
	"fmt"
	"runtime"

	"github.com/viant/lockstep/worker"
)

// Processor owns an ordered list of workers and dispatches phase events to
// them.
type Processor[S any] struct {
	workers []worker.Worker[S]
	events  <-chan Event[S]
	acks    chan<- struct{}
	options *options
}

// New creates a processor reading events and writing acknowledgements on the
// supplied channel ends.
func New[S any](workers []worker.Worker[S], events <-chan Event[S], acks chan<- struct{}, opts ...Option) *Processor[S] {
	return &Processor[S]{
		workers: workers,
		events:  events,
		acks:    acks,
		options: newOptions(opts),
	}
}

// Len returns the number of hosted workers.
func (p *Processor[S]) Len() int {
	return len(p.workers)
}

// Run processes events until the event channel is closed, at which point it
// panics with ErrDisconnected. It never returns normally.
func (p *Processor[S]) Run() {
	if p.options.lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	for {
		anEvent, ok := <-p.events
		if !ok {
			p.options.logger.Error().
				Str("processor", p.options.name).
				Err(ErrDisconnected).
				Msg("event channel closed")
			panic(ErrDisconnected)
		}
		p.Handle(anEvent)
		p.acks <- struct{}{}
	}
}

// Handle invokes every worker for a single event, in registration order.
func (p *Processor[S]) Handle(anEvent Event[S]) {
	switch anEvent.Phase() {
	case PhaseCycle:
		state := anEvent.Shared()
		for _, w := range p.workers {
			w.Cycle(state)
		}
	case PhaseApply:
		state := anEvent.Exclusive()
		for _, w := range p.workers {
			w.Apply(state)
		}
	default:
		panic(fmt.Errorf("%w: %v", ErrInvalidEvent, anEvent.Phase()))
	}
}
