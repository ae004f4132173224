package lockstep

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/lockstep/guard"
	"github.com/viant/lockstep/progress"
	"github.com/viant/lockstep/service/conductor"
	"github.com/viant/lockstep/service/dao"
	"github.com/viant/lockstep/service/dao/snapshot"
	sfs "github.com/viant/lockstep/service/dao/snapshot/fs"
	smemory "github.com/viant/lockstep/service/dao/snapshot/memory"
	"github.com/viant/lockstep/service/event"
	"github.com/viant/lockstep/service/messaging/memory"
	"github.com/viant/lockstep/service/thread"
	"github.com/viant/lockstep/tracing"
	"github.com/viant/lockstep/worker"
)

// Service wires a conductor with its threads, observers and snapshot store.
type Service[S any] struct {
	config    *Config
	logger    zerolog.Logger
	conductor *conductor.Conductor[S]
	tracker   *progress.Progress
	events    *event.Service
	snapshots dao.Service[string, snapshot.Snapshot[S]]
	tracing   bool
	closeOnce sync.Once
}

// New creates a Service owning state.
func New[S any](state S, opts ...Option) (*Service[S], error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	o.ensureConfig()
	cfg := o.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ret := &Service[S]{config: cfg, logger: o.logger}

	if cfg.Tracing.Enabled {
		var err error
		if o.traceExporter != nil {
			err = tracing.InitWithExporter(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, o.traceExporter)
		} else {
			err = tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.OutputFile)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
		ret.tracing = true
	}

	name := cfg.Conductor.Name
	if name == "" {
		name = "lockstep"
	}
	ret.tracker = progress.New(name, o.onProgress)

	conductorOptions := []conductor.Option{
		conductor.WithName(name),
		conductor.WithGuard(guard.FromConfig(&guard.Config{Mode: cfg.Conductor.Guard})),
		conductor.WithProgress(ret.tracker),
		conductor.WithTracing(ret.tracing),
		conductor.WithLogger(o.logger),
	}
	if cfg.Events.Enabled || o.onTick != nil {
		publisher, err := ret.initEvents(o)
		if err != nil {
			return nil, err
		}
		conductorOptions = append(conductorOptions, conductor.WithPublisher(publisher))
	}
	ret.conductor = conductor.New(state, conductorOptions...)

	switch strings.ToLower(cfg.Snapshot.Vendor) {
	case SnapshotFs:
		store, err := sfs.New[S](context.Background(), cfg.Snapshot.BasePath)
		if err != nil {
			ret.Close()
			return nil, err
		}
		ret.snapshots = store
	default:
		ret.snapshots = smemory.New[S]()
	}
	return ret, nil
}

func (s *Service[S]) initEvents(o *options) (*event.Publisher[event.Tick], error) {
	buffer := s.config.Events.QueueBuffer
	if buffer <= 0 {
		buffer = DefaultConfig().Events.QueueBuffer
	}
	events, err := event.New(event.VendorMemory,
		event.WithLogger(o.logger),
		event.WithNewMemoryQueueConfig(func(string) memory.Config {
			cfg := memory.DefaultConfig()
			cfg.QueueBuffer = buffer
			cfg.DropWhenFull = true
			return cfg
		}))
	if err != nil {
		return nil, err
	}
	s.events = events
	publisher, err := event.PublisherOf[event.Tick](events)
	if err != nil {
		return nil, err
	}
	if o.onTick != nil {
		if err = event.SetListenerOf[event.Tick](events, o.onTick); err != nil {
			return nil, err
		}
	}
	return publisher, nil
}

// NewThread creates a thread holding constructors and registers it with the
// conductor. Threads created after Start must be started by the caller.
func (s *Service[S]) NewThread(constructors ...worker.Constructor[S]) *thread.Thread[S] {
	t := thread.New[S](
		thread.WithName(fmt.Sprintf("thread-%d", len(s.conductor.Threads()))),
		thread.WithLockOSThread(s.config.Thread.LockOSThread),
		thread.WithLogger(s.logger),
	)
	for _, constructor := range constructors {
		t.Add(constructor)
	}
	s.conductor.Add(t)
	return t
}

// Start launches every registered thread that is not running yet.
func (s *Service[S]) Start() {
	for _, t := range s.conductor.Threads() {
		if !t.Started() {
			t.Start()
		}
	}
}

// Cycle runs one forward tick.
func (s *Service[S]) Cycle() {
	s.conductor.Cycle()
}

// InverseCycle runs one inverse tick.
func (s *Service[S]) InverseCycle() {
	s.conductor.InverseCycle()
}

// Run drives ticks with the configured order, interval and tick budget.
func (s *Service[S]) Run(ctx context.Context) error {
	order, err := conductor.ParseOrder(s.config.Conductor.Order)
	if err != nil {
		return err
	}
	return s.conductor.Run(ctx, order, s.config.Conductor.Interval, s.config.Conductor.Ticks)
}

// State returns the shared state; valid between ticks only.
func (s *Service[S]) State() *S {
	return s.conductor.Get()
}

// Mutate changes the shared state between ticks.
func (s *Service[S]) Mutate(fn func(state *S)) {
	s.conductor.Mutate(fn)
}

// Progress returns a copy of the tick counters.
func (s *Service[S]) Progress() progress.Progress {
	return s.tracker.Snapshot()
}

// Conductor returns the underlying conductor.
func (s *Service[S]) Conductor() *conductor.Conductor[S] {
	return s.conductor
}

// Config returns the effective configuration.
func (s *Service[S]) Config() *Config {
	return s.config
}

// Close stops tick listeners and flushes spans. Worker goroutines are not
// torn down.
func (s *Service[S]) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.events != nil {
			s.events.Close()
		}
		if s.tracing {
			err = tracing.Shutdown(context.Background())
		}
	})
	return err
}
