package guard

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// Guard modes recognised by the engine.
const (
	ModeChecked = "checked" // verify every acquire/release (default)
	ModeTrusted = "trusted" // no verification
)

var (
	// ErrApplyOutstanding is raised when a view is requested while an
	// exclusive view is still held.
	ErrApplyOutstanding = errors.New("guard: apply view outstanding")
	// ErrCycleOutstanding is raised when the exclusive view is requested
	// while shared views are still held.
	ErrCycleOutstanding = errors.New("guard: cycle view outstanding")
	// ErrNotHeld is raised when releasing a view that was never acquired.
	ErrNotHeld = errors.New("guard: view not held")
)

// Config represents the declarative part of a Guard.
type Config struct {
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// Guard tracks outstanding shared and exclusive views of a single state.
type Guard struct {
	mode    string
	permit  chan struct{}
	readers atomic.Int64
}

// New creates a guard; an empty mode means ModeChecked.
func New(mode string) *Guard {
	if mode == "" {
		mode = ModeChecked
	}
	return &Guard{
		mode:   strings.ToLower(mode),
		permit: make(chan struct{}, 1),
	}
}

// FromConfig creates a guard from its declarative form.
func FromConfig(c *Config) *Guard {
	if c == nil {
		return New(ModeChecked)
	}
	return New(c.Mode)
}

// ValidateMode returns an error for an unrecognised mode.
func ValidateMode(mode string) error {
	switch strings.ToLower(mode) {
	case "", ModeChecked, ModeTrusted:
		return nil
	}
	return fmt.Errorf("unsupported guard mode: %q", mode)
}

// Mode returns the guard mode.
func (g *Guard) Mode() string {
	if g == nil {
		return ModeTrusted
	}
	return g.mode
}

// Checked reports whether acquire/release calls are verified.
func (g *Guard) Checked() bool {
	return g != nil && g.mode != ModeTrusted
}

// AcquireShared registers one outstanding shared view.
func (g *Guard) AcquireShared() {
	if !g.Checked() {
		return
	}
	if len(g.permit) > 0 {
		panic(ErrApplyOutstanding)
	}
	g.readers.Add(1)
}

// ReleaseShared releases one shared view.
func (g *Guard) ReleaseShared() {
	if !g.Checked() {
		return
	}
	if g.readers.Add(-1) < 0 {
		g.readers.Add(1)
		panic(ErrNotHeld)
	}
}

// AcquireExclusive takes the single exclusive permit.
func (g *Guard) AcquireExclusive() {
	if !g.Checked() {
		return
	}
	if g.readers.Load() > 0 {
		panic(ErrCycleOutstanding)
	}
	select {
	case g.permit <- struct{}{}:
	default:
		panic(ErrApplyOutstanding)
	}
}

// ReleaseExclusive returns the exclusive permit.
func (g *Guard) ReleaseExclusive() {
	if !g.Checked() {
		return
	}
	select {
	case <-g.permit:
	default:
		panic(ErrNotHeld)
	}
}

// Readers returns the number of outstanding shared views.
func (g *Guard) Readers() int {
	if g == nil {
		return 0
	}
	return int(g.readers.Load())
}

// Exclusive reports whether the exclusive permit is held.
func (g *Guard) Exclusive() bool {
	if g == nil {
		return false
	}
	return len(g.permit) > 0
}

// Idle reports whether no view is outstanding.
func (g *Guard) Idle() bool {
	return g.Readers() == 0 && !g.Exclusive()
}
