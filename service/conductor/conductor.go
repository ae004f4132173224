package conductor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/lockstep/guard"
	"github.com/viant/lockstep/internal/clock"
	"github.com/viant/lockstep/internal/idgen"
	"github.com/viant/lockstep/progress"
	"github.com/viant/lockstep/service/event"
	"github.com/viant/lockstep/service/thread"
	"github.com/viant/lockstep/tracing"
)

// Conductor owns the canonical state and the roster of threads.
type Conductor[S any] struct {
	id      string
	state   S
	threads []*thread.Thread[S]
	tick    uint64
	// workers already reported to the progress tracker
	counted int
	options options
}

// New creates a conductor over the initial state. Unless WithGuard says
// otherwise the aliasing contract is checked at runtime.
func New[S any](state S, opts ...Option) *Conductor[S] {
	ret := &Conductor[S]{
		id:    idgen.New(),
		state: state,
		options: options{
			guard:  guard.New(guard.ModeChecked),
			logger: zerolog.Nop(),
		},
	}
	for _, opt := range opts {
		opt(&ret.options)
	}
	if ret.options.name == "" {
		ret.options.name = ret.id
	}
	return ret
}

// ID returns the conductor identifier.
func (c *Conductor[S]) ID() string {
	return c.id
}

// Name returns the conductor name.
func (c *Conductor[S]) Name() string {
	return c.options.name
}

// Add appends a thread to the roster. Roster order is apply order.
func (c *Conductor[S]) Add(t *thread.Thread[S]) {
	c.threads = append(c.threads, t)
	c.counted += t.Len()
	c.options.tracker.Update(progress.Delta{Threads: 1, Workers: t.Len()})
}

// Threads returns the roster.
func (c *Conductor[S]) Threads() []*thread.Thread[S] {
	return c.threads
}

// Workers returns the number of workers registered across the roster.
func (c *Conductor[S]) Workers() int {
	ret := 0
	for _, t := range c.threads {
		ret += t.Len()
	}
	return ret
}

// Tick returns the number of completed ticks.
func (c *Conductor[S]) Tick() uint64 {
	return c.tick
}

// Guard returns the guard enforcing the aliasing contract.
func (c *Conductor[S]) Guard() *guard.Guard {
	return c.options.guard
}

// Get returns the state. The pointer may only be dereferenced between ticks.
func (c *Conductor[S]) Get() *S {
	return &c.state
}

// Mutate runs fn with the exclusive view of the state between ticks.
func (c *Conductor[S]) Mutate(fn func(state *S)) {
	c.options.guard.AcquireExclusive()
	defer c.options.guard.ReleaseExclusive()
	fn(&c.state)
}

// Cycle wakes every thread for a cycle, waits for all of them, then applies
// changes thread by thread in roster order.
func (c *Conductor[S]) Cycle() {
	c.step(context.Background(), OrderForward)
}

// InverseCycle applies changes thread by thread, then wakes every thread for
// a cycle and waits for all of them.
func (c *Conductor[S]) InverseCycle() {
	c.step(context.Background(), OrderInverse)
}

// Step runs a single tick in the given order.
func (c *Conductor[S]) Step(ctx context.Context, order Order) {
	c.step(ctx, order)
}

// Run drives ticks until ctx is done or ticks have completed; ticks <= 0
// means no limit. The context is only checked between ticks. A positive
// interval paces ticks with a ticker, otherwise they run back to back.
func (c *Conductor[S]) Run(ctx context.Context, order Order, interval time.Duration, ticks int) error {
	logger := c.options.logger.With().Str("conductor", c.options.name).Str("order", string(order)).Logger()
	logger.Info().Dur("interval", interval).Int("ticks", ticks).Int("threads", len(c.threads)).Msg("conductor running")

	var pace <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pace = ticker.C
	}
	for n := 0; ticks <= 0 || n < ticks; n++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				logger.Info().Uint64("tick", c.tick).Msg("conductor stopped")
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			logger.Info().Uint64("tick", c.tick).Msg("conductor stopped")
			return err
		}
		c.step(ctx, order)
	}
	logger.Info().Uint64("tick", c.tick).Msg("conductor completed")
	return nil
}

func (c *Conductor[S]) step(ctx context.Context, order Order) {
	if len(c.threads) == 0 {
		return
	}
	observed := c.options.tracker != nil || c.options.publisher != nil
	var started time.Time
	if observed {
		started = clock.Now()
	}
	var span *tracing.Span
	if c.options.tracing {
		ctx, span = tracing.StartSpan(ctx, "conductor.tick")
		span.WithInt("tick", int64(c.tick+1)).WithAttributes(map[string]string{
			"conductor": c.options.name,
			"order":     string(order),
		})
	}

	if order == OrderInverse {
		c.applyPhase(ctx)
		c.cyclePhase(ctx)
	} else {
		c.cyclePhase(ctx)
		c.applyPhase(ctx)
	}
	c.tick++

	tracing.EndSpan(span, nil)
	if observed {
		c.observe(ctx, order, started)
	}
}

// cyclePhase hands a shared view to every thread, then waits for all of
// them. Shared views are freely aliasable.
func (c *Conductor[S]) cyclePhase(ctx context.Context) {
	if c.options.tracing {
		_, span := tracing.StartSpan(ctx, "conductor.cycle")
		defer tracing.EndSpan(span, nil)
	}
	for _, t := range c.threads {
		c.options.guard.AcquireShared()
		t.Cycle(&c.state)
	}
	for _, t := range c.threads {
		t.Wait()
		c.options.guard.ReleaseShared()
	}
}

// applyPhase hands the exclusive view to one thread at a time.
func (c *Conductor[S]) applyPhase(ctx context.Context) {
	if c.options.tracing {
		_, span := tracing.StartSpan(ctx, "conductor.apply")
		defer tracing.EndSpan(span, nil)
	}
	for _, t := range c.threads {
		c.options.guard.AcquireExclusive()
		t.Apply(&c.state)
		c.options.guard.ReleaseExclusive()
	}
}

func (c *Conductor[S]) observe(ctx context.Context, order Order, started time.Time) {
	elapsed := clock.Since(started)
	threads := len(c.threads)
	// constructors may be added to a thread after it joined the roster
	workers := c.Workers()
	delta := progress.Delta{Ticks: 1, Cycles: threads, Applies: threads, Workers: workers - c.counted, Elapsed: elapsed}
	c.counted = workers
	c.options.tracker.Update(delta)
	if c.options.publisher == nil {
		return
	}
	anEvent := event.NewEvent(&event.Context{
		Conductor:   c.options.name,
		EventType:   event.TypeTick,
		Order:       string(order),
		TimeTakenMs: int(elapsed.Milliseconds()),
	}, event.Tick{
		Number:    c.tick,
		Order:     string(order),
		Threads:   threads,
		Workers:   workers,
		StartedAt: started,
		Duration:  elapsed,
	})
	if err := c.options.publisher.Publish(context.WithoutCancel(ctx), anEvent); err != nil {
		c.options.logger.Warn().Err(err).Uint64("tick", c.tick).Msg("failed to publish tick")
	}
}
