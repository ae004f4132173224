// Package conductor drives the two-phase protocol across a roster of
// threads.
//
// Every tick of Cycle sends a shared view of the state to every thread, waits
// for all of them (the barrier), then hands the exclusive view to each thread
// in roster order, one at a time. InverseCycle applies first and cycles
// second. Ticks never overlap: the calling goroutine blocks at every phase
// boundary.
package conductor
