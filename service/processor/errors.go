package processor

import "errors"

var (
	// ErrDisconnected reports a closed signalling channel.
	ErrDisconnected = errors.New("processor: channel disconnected")
	// ErrInvalidEvent reports an event with an unknown phase or a view
	// requested for the wrong phase.
	ErrInvalidEvent = errors.New("processor: invalid event")
)
