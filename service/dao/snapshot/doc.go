// Package snapshot defines checkpoints of a conductor state. Stores live in
// the memory and fs sub-packages; both keep snapshots JSON encoded, so S must
// be JSON serialisable and a stored snapshot never shares memory with the
// live state.
package snapshot
