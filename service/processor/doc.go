// Package processor hosts the workers of a single thread. A Processor runs
// inside its own goroutine, receives one phase Event at a time and invokes
// every owned worker in registration order before acknowledging it.
//
// A closed event channel is a protocol violation: the processor panics and
// never attempts to recover.
package processor
