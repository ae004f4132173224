// Package guard enforces the aliasing contract between the cycle and apply
// phases. Any number of shared views may be outstanding at once, or exactly
// one exclusive view, never both. The exclusive permit is a capacity-one
// channel.
//
// A Guard in ModeTrusted performs no checks; the contract is then a
// documented precondition of the orchestrator, as it is for a nil *Guard.
package guard
