package processor

import "github.com/rs/zerolog"

// Option configures a Processor.
type Option func(*options)

type options struct {
	name         string
	lockOSThread bool
	logger       zerolog.Logger
}

func newOptions(opts []Option) *options {
	ret := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithName sets the name reported in logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLockOSThread pins the processor goroutine to its OS thread for the
// lifetime of Run.
func WithLockOSThread(lock bool) Option {
	return func(o *options) {
		o.lockOSThread = lock
	}
}

// WithLogger sets the processor logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
