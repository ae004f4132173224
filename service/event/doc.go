// Package event publishes conductor notifications, such as completed ticks,
// to typed queues and delivers them to listeners on their own goroutine so
// that observers never run inside a phase.
package event
