package worker

// Worker is responsible for the update of a given state.
//
// Cycle is called with a shared view of the state; it must not mutate
// anything reachable through state, since other workers read it
// concurrently. Apply is called with the exclusive view and commits whatever
// Cycle staged. Apply must not assume Cycle was called immediately before it.
type Worker[S any] interface {
	Cycle(state *S)

	Apply(state *S)
}

// Constructor builds a Worker inside the goroutine that will host it.
type Constructor[S any] func() Worker[S]

// Funcs adapts a pair of plain functions to the Worker interface. A nil
// function is a no-op.
type Funcs[S any] struct {
	OnCycle func(state *S)
	OnApply func(state *S)
}

// Cycle calls OnCycle when set.
func (f *Funcs[S]) Cycle(state *S) {
	if f.OnCycle != nil {
		f.OnCycle(state)
	}
}

// Apply calls OnApply when set.
func (f *Funcs[S]) Apply(state *S) {
	if f.OnApply != nil {
		f.OnApply(state)
	}
}

// Of wraps an already built worker into a Constructor.
func Of[S any](w Worker[S]) Constructor[S] {
	return func() Worker[S] { return w }
}

// Build runs every constructor in order and returns the built workers.
func Build[S any](constructors []Constructor[S]) []Worker[S] {
	ret := make([]Worker[S], 0, len(constructors))
	for _, construct := range constructors {
		ret = append(ret, construct())
	}
	return ret
}

var _ Worker[int] = (*Funcs[int])(nil)
