package lockstep_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/lockstep"
	"github.com/viant/lockstep/progress"
	"github.com/viant/lockstep/service/dao"
	"github.com/viant/lockstep/service/event"
	"github.com/viant/lockstep/worker"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recorder collects the values counters observed during their cycle phase.
type recorder struct {
	mux  sync.Mutex
	seen []int
}

func (r *recorder) add(v int) {
	r.mux.Lock()
	r.seen = append(r.seen, v)
	r.mux.Unlock()
}

func (r *recorder) sorted() []int {
	r.mux.Lock()
	defer r.mux.Unlock()
	ret := append([]int(nil), r.seen...)
	sort.Ints(ret)
	return ret
}

type counter struct {
	recorder *recorder
	staged   int
}

func (c *counter) Cycle(state *int) {
	c.recorder.add(*state)
	c.staged = 1
}

func (c *counter) Apply(state *int) {
	*state += c.staged
	c.staged = 0
}

func newCounter(r *recorder) worker.Constructor[int] {
	return func() worker.Worker[int] { return &counter{recorder: r} }
}

func TestService_Cycle(t *testing.T) {
	testCases := []struct {
		description string
		inverse     bool
		expectSeen  []int
	}{
		{description: "forward", expectSeen: []int{0, 0, 2, 2, 4, 4}},
		{description: "inverse", inverse: true, expectSeen: []int{0, 0, 2, 2, 4, 4}},
	}
	for _, testCase := range testCases {
		r := &recorder{}
		srv, err := lockstep.New(0)
		require.NoError(t, err, testCase.description)
		srv.NewThread(newCounter(r))
		srv.NewThread(newCounter(r))
		srv.Start()
		for i := 0; i < 3; i++ {
			if testCase.inverse {
				srv.InverseCycle()
			} else {
				srv.Cycle()
			}
		}
		assert.Equal(t, testCase.expectSeen, r.sorted(), testCase.description)
		if testCase.inverse {
			// the last cycle staged increments that were never applied
			assert.Equal(t, 4, *srv.State(), testCase.description)
		} else {
			assert.Equal(t, 6, *srv.State(), testCase.description)
		}
		assert.EqualValues(t, 3, srv.Progress().Ticks, testCase.description)
		assert.NoError(t, srv.Close(), testCase.description)
	}
}

func TestService_NewThread(t *testing.T) {
	srv, err := lockstep.New(0)
	require.NoError(t, err)
	first := srv.NewThread(newCounter(&recorder{}), newCounter(&recorder{}))
	second := srv.NewThread()
	assert.Equal(t, "thread-0", first.Name())
	assert.Equal(t, "thread-1", second.Name())
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, srv.Conductor().Workers())

	srv.Start()
	assert.True(t, first.Started())
	assert.True(t, second.Started())
	assert.NotPanics(t, srv.Start)

	third := srv.NewThread(newCounter(&recorder{}))
	srv.Start()
	assert.True(t, third.Started())
	srv.Cycle()
	assert.Equal(t, 3, *srv.State())
}

func TestService_Run(t *testing.T) {
	cfg := lockstep.DefaultConfig()
	cfg.Conductor.Ticks = 5
	cfg.Conductor.Interval = time.Millisecond

	var mux sync.Mutex
	var updates []progress.Progress
	srv, err := lockstep.New(0,
		lockstep.WithConfig(cfg),
		lockstep.WithProgressListener(func(p progress.Progress) {
			mux.Lock()
			updates = append(updates, p)
			mux.Unlock()
		}))
	require.NoError(t, err)
	srv.NewThread(newCounter(&recorder{}))
	srv.Start()
	require.NoError(t, srv.Run(context.Background()))
	assert.Equal(t, 5, *srv.State())
	assert.EqualValues(t, 5, srv.Conductor().Tick())

	mux.Lock()
	defer mux.Unlock()
	require.Len(t, updates, 5)
	assert.Equal(t, 5, updates[4].Ticks)
	assert.Equal(t, 5, updates[4].ApplyPhases)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg.Conductor.Ticks = 0
	stopped, err := lockstep.New(0, lockstep.WithConfig(cfg))
	require.NoError(t, err)
	stopped.NewThread(newCounter(&recorder{}))
	stopped.Start()
	assert.ErrorIs(t, stopped.Run(ctx), context.Canceled)
	assert.Equal(t, 0, *stopped.State())
}

func TestService_TickListener(t *testing.T) {
	var mux sync.Mutex
	var ticks []event.Tick
	srv, err := lockstep.New(0, lockstep.WithTickListener(func(e *event.Event[event.Tick]) {
		mux.Lock()
		ticks = append(ticks, e.Data)
		mux.Unlock()
	}))
	require.NoError(t, err)
	defer srv.Close()
	srv.NewThread(newCounter(&recorder{}))
	srv.Start()
	srv.Cycle()
	srv.InverseCycle()

	require.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(ticks) == 2
	}, time.Second, 5*time.Millisecond)
	mux.Lock()
	defer mux.Unlock()
	assert.EqualValues(t, 1, ticks[0].Number)
	assert.Equal(t, "forward", ticks[0].Order)
	assert.EqualValues(t, 2, ticks[1].Number)
	assert.Equal(t, "inverse", ticks[1].Order)
	assert.Equal(t, 1, ticks[1].Workers)
}

func TestService_Checkpoint(t *testing.T) {
	testCases := []struct {
		description string
		config      func(t *testing.T) *lockstep.Config
	}{
		{
			description: "memory",
			config: func(t *testing.T) *lockstep.Config {
				return lockstep.DefaultConfig()
			},
		},
		{
			description: "fs",
			config: func(t *testing.T) *lockstep.Config {
				cfg := lockstep.DefaultConfig()
				cfg.Snapshot = lockstep.SnapshotConfig{Vendor: lockstep.SnapshotFs, BasePath: t.TempDir()}
				return cfg
			},
		},
	}
	ctx := context.Background()
	for _, testCase := range testCases {
		srv, err := lockstep.New(0, lockstep.WithConfig(testCase.config(t)))
		require.NoError(t, err, testCase.description)
		srv.NewThread(newCounter(&recorder{}))
		srv.Start()
		srv.Cycle()
		srv.Cycle()

		aSnapshot, err := srv.Checkpoint(ctx, "")
		require.NoError(t, err, testCase.description)
		assert.Equal(t, "tick-000002", aSnapshot.ID, testCase.description)
		assert.EqualValues(t, 2, aSnapshot.Tick, testCase.description)
		assert.Equal(t, 2, aSnapshot.State, testCase.description)

		srv.Cycle()
		_, err = srv.Checkpoint(ctx, "named")
		require.NoError(t, err, testCase.description)
		assert.Equal(t, 3, *srv.State(), testCase.description)

		require.NoError(t, srv.Restore(ctx, "tick-000002"), testCase.description)
		assert.Equal(t, 2, *srv.State(), testCase.description)
		assert.EqualValues(t, 3, srv.Conductor().Tick(), testCase.description)

		snapshots, err := srv.Snapshots(ctx)
		require.NoError(t, err, testCase.description)
		require.Len(t, snapshots, 2, testCase.description)
		assert.Equal(t, "named", snapshots[0].ID, testCase.description)
		assert.Equal(t, "tick-000002", snapshots[1].ID, testCase.description)

		require.NoError(t, srv.DeleteSnapshot(ctx, "named"), testCase.description)
		err = srv.Restore(ctx, "named")
		assert.ErrorIs(t, err, dao.ErrNotFound, testCase.description)
	}
}

func TestService_CheckpointSliceState(t *testing.T) {
	testCases := []struct {
		description string
		config      func(t *testing.T) *lockstep.Config
	}{
		{description: "memory", config: func(t *testing.T) *lockstep.Config { return lockstep.DefaultConfig() }},
		{
			description: "fs",
			config: func(t *testing.T) *lockstep.Config {
				cfg := lockstep.DefaultConfig()
				cfg.Snapshot = lockstep.SnapshotConfig{Vendor: lockstep.SnapshotFs, BasePath: t.TempDir()}
				return cfg
			},
		},
	}
	ctx := context.Background()
	for _, testCase := range testCases {
		srv, err := lockstep.New([]int{0, 0}, lockstep.WithConfig(testCase.config(t)))
		require.NoError(t, err, testCase.description)
		srv.NewThread(func() worker.Worker[[]int] {
			return &worker.Funcs[[]int]{OnApply: func(state *[]int) { (*state)[0]++ }}
		})
		srv.Start()
		srv.Cycle()

		taken, err := srv.Checkpoint(ctx, "one")
		require.NoError(t, err, testCase.description)
		srv.Cycle()
		srv.Cycle()
		assert.Equal(t, []int{1, 0}, taken.State, testCase.description)
		assert.Equal(t, []int{3, 0}, *srv.State(), testCase.description)

		require.NoError(t, srv.Restore(ctx, "one"), testCase.description)
		assert.Equal(t, []int{1, 0}, *srv.State(), testCase.description)

		srv.Cycle()
		again, err := srv.Snapshots(ctx)
		require.NoError(t, err, testCase.description)
		require.Len(t, again, 1, testCase.description)
		assert.Equal(t, []int{1, 0}, again[0].State, testCase.description)
		assert.Equal(t, []int{2, 0}, *srv.State(), testCase.description)
	}
}

func TestService_Tracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	srv, err := lockstep.New(0, lockstep.WithTracingExporter("lockstep-test", "0.0.1", exporter))
	require.NoError(t, err)
	srv.NewThread(newCounter(&recorder{}))
	srv.Start()
	srv.Cycle()

	var names []string
	for _, span := range exporter.GetSpans() {
		names = append(names, span.Name)
	}
	assert.ElementsMatch(t, []string{"conductor.cycle", "conductor.apply", "conductor.tick"}, names)
	assert.NoError(t, srv.Close())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := lockstep.DefaultConfig()
	cfg.Conductor.Guard = "loose"
	_, err := lockstep.New(0, lockstep.WithConfig(cfg))
	assert.Error(t, err)
}
