package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by the conductor.
type Delta struct {
	Ticks   int
	Cycles  int
	Applies int
	Threads int
	Workers int
	// Elapsed, when non-zero, replaces the last tick duration.
	Elapsed time.Duration
}

// Progress keeps aggregated counters for a single conductor. It is safe for
// concurrent use.
type Progress struct {
	Name      string
	StartedAt time.Time

	Ticks       int
	CyclePhases int
	ApplyPhases int
	Threads     int
	Workers     int
	LastTick    time.Duration
	TotalTime   time.Duration

	sync.Mutex
	onChange func(Progress)
}

// New creates a tracker; onChange may be nil.
func New(name string, onChange func(Progress)) *Progress {
	return &Progress{Name: name, StartedAt: time.Now(), onChange: onChange}
}

// Update applies the supplied delta. The onChange callback, if any, is
// invoked with a copy of the counters outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}

	p.Lock()
	p.Ticks += d.Ticks
	p.CyclePhases += d.Cycles
	p.ApplyPhases += d.Applies
	p.Threads += d.Threads
	p.Workers += d.Workers
	if d.Elapsed > 0 {
		p.LastTick = d.Elapsed
		p.TotalTime += d.Elapsed
	}
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// AverageTick returns the mean tick duration.
func (p *Progress) AverageTick() time.Duration {
	s := p.Snapshot()
	if s.Ticks == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Ticks)
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		Name:        p.Name,
		StartedAt:   p.StartedAt,
		Ticks:       p.Ticks,
		CyclePhases: p.CyclePhases,
		ApplyPhases: p.ApplyPhases,
		Threads:     p.Threads,
		Workers:     p.Workers,
		LastTick:    p.LastTick,
		TotalTime:   p.TotalTime,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds the tracker in a derived context.
func WithTracker(ctx context.Context, tr *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tr)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
