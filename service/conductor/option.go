package conductor

import (
	"github.com/rs/zerolog"
	"github.com/viant/lockstep/guard"
	"github.com/viant/lockstep/progress"
	"github.com/viant/lockstep/service/event"
)

// Option configures a Conductor.
type Option func(*options)

type options struct {
	name      string
	guard     *guard.Guard
	tracker   *progress.Progress
	publisher *event.Publisher[event.Tick]
	tracing   bool
	logger    zerolog.Logger
}

// WithName sets the conductor name reported in logs, spans and events.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithGuard replaces the default checked guard. A nil guard disables checks.
func WithGuard(g *guard.Guard) Option {
	return func(o *options) {
		o.guard = g
	}
}

// WithProgress sets the tracker updated after every tick.
func WithProgress(tracker *progress.Progress) Option {
	return func(o *options) {
		o.tracker = tracker
	}
}

// WithPublisher sets the publisher notified after every tick.
func WithPublisher(publisher *event.Publisher[event.Tick]) Option {
	return func(o *options) {
		o.publisher = publisher
	}
}

// WithTracing enables one span per tick and one child span per phase.
func WithTracing(enabled bool) Option {
	return func(o *options) {
		o.tracing = enabled
	}
}

// WithLogger sets the conductor logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
