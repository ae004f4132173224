package thread

import "github.com/rs/zerolog"

// Option configures a Thread.
type Option func(*options)

type options struct {
	name         string
	lockOSThread bool
	logger       zerolog.Logger
}

// WithName sets a human readable thread name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLockOSThread pins the hosting goroutine to its OS thread.
func WithLockOSThread(lock bool) Option {
	return func(o *options) {
		o.lockOSThread = lock
	}
}

// WithLogger sets the logger shared with the hosted processor.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
