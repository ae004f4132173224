// Package worker defines the capability contract implemented by application
// code and hosted by a processor.
//
// A Worker observes the shared state during the cycle phase and commits its
// staged results during the apply phase:
//
//	type counter struct{ seen []int }
//
//	func (c *counter) Cycle(state *int) { c.seen = append(c.seen, *state) }
//	func (c *counter) Apply(state *int) { *state++ }
//
// Workers are never constructed by the caller directly; a Constructor is
// registered instead and invoked inside the goroutine that hosts the worker.
package worker
