package thread

import (
	"github.com/rs/zerolog"
	"github.com/viant/lockstep/internal/idgen"
	"github.com/viant/lockstep/service/processor"
	"github.com/viant/lockstep/worker"
)

// Thread owns the signalling channels to one processor and, before launch,
// the deferred worker constructors.
type Thread[S any] struct {
	id           string
	options      options
	constructors []worker.Constructor[S]

	events chan<- processor.Event[S]
	acks   <-chan struct{}

	// processor-side ends, handed over on Start
	procEvents <-chan processor.Event[S]
	procAcks   chan<- struct{}
	size       int
}

// New creates a thread that has not been started yet.
func New[S any](opts ...Option) *Thread[S] {
	events := make(chan processor.Event[S], 1)
	acks := make(chan struct{}, 1)
	ret := &Thread[S]{
		id:         idgen.New(),
		events:     events,
		acks:       acks,
		procEvents: events,
		procAcks:   acks,
	}
	ret.options.logger = zerolog.Nop()
	for _, opt := range opts {
		opt(&ret.options)
	}
	if ret.options.name == "" {
		ret.options.name = ret.id
	}
	return ret
}

// ID returns the thread identifier.
func (t *Thread[S]) ID() string {
	return t.id
}

// Name returns the thread name, the ID when none was set.
func (t *Thread[S]) Name() string {
	return t.options.name
}

// Len returns the number of registered workers.
func (t *Thread[S]) Len() int {
	return t.size
}

// Started reports whether Start was called.
func (t *Thread[S]) Started() bool {
	return t.procEvents == nil
}

// Add registers a deferred worker constructor. It panics with
// ErrAlreadyStarted once the thread has been launched.
func (t *Thread[S]) Add(constructor worker.Constructor[S]) {
	if t.Started() {
		panic(ErrAlreadyStarted)
	}
	t.constructors = append(t.constructors, constructor)
	t.size++
}

// Start spawns the goroutine that builds every worker and then runs the
// processor loop. It panics with ErrAlreadyStarted on a second call.
func (t *Thread[S]) Start() {
	if t.Started() {
		panic(ErrAlreadyStarted)
	}
	constructors, events, acks := t.constructors, t.procEvents, t.procAcks
	t.constructors, t.procEvents, t.procAcks = nil, nil, nil

	opts := []processor.Option{
		processor.WithName(t.options.name),
		processor.WithLockOSThread(t.options.lockOSThread),
		processor.WithLogger(t.options.logger),
	}
	t.options.logger.Debug().
		Str("thread", t.options.name).
		Str("id", t.id).
		Int("workers", len(constructors)).
		Bool("lockOSThread", t.options.lockOSThread).
		Msg("thread started")
	go func() {
		// workers are built on the hosting goroutine
		workers := worker.Build(constructors)
		processor.New(workers, events, acks, opts...).Run()
	}()
}

// Cycle sends a shared view of state to the processor.
//
// The caller must keep state valid and unmodified until the matching Wait
// returns.
func (t *Thread[S]) Cycle(state *S) {
	t.events <- processor.CycleEvent(state)
}

// Wait blocks until the pending acknowledgement arrives. It panics with
// processor.ErrDisconnected if the acknowledgement channel is closed.
func (t *Thread[S]) Wait() {
	if _, ok := <-t.acks; !ok {
		t.options.logger.Error().Str("thread", t.options.name).Msg("acknowledgement channel closed")
		panic(processor.ErrDisconnected)
	}
}

// Apply sends the exclusive view of state and blocks until the processor has
// applied every worker.
//
// The caller must guarantee nobody else observes or mutates state during the
// call.
func (t *Thread[S]) Apply(state *S) {
	t.events <- processor.ApplyEvent(state)
	t.Wait()
}
