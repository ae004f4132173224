package lockstep

import (
	"context"
	"fmt"

	"github.com/viant/lockstep/internal/clock"
	"github.com/viant/lockstep/service/dao/snapshot"
)

// Checkpoint stores a JSON encoded copy of the state, so S must be JSON
// serialisable. It must be called between ticks. An empty id defaults to the
// current tick number. The returned snapshot does not share memory with the
// live state.
func (s *Service[S]) Checkpoint(ctx context.Context, id string) (*snapshot.Snapshot[S], error) {
	ret := &snapshot.Snapshot[S]{
		ID:        id,
		Conductor: s.conductor.Name(),
		TakenAt:   clock.Now(),
	}
	s.conductor.Mutate(func(state *S) {
		ret.Tick = s.conductor.Tick()
		ret.State = *state
	})
	if ret.ID == "" {
		ret.ID = fmt.Sprintf("tick-%06d", ret.Tick)
	}
	if err := s.snapshots.Save(ctx, ret); err != nil {
		return nil, fmt.Errorf("failed to save snapshot %s: %w", ret.ID, err)
	}
	s.logger.Debug().Str("snapshot", ret.ID).Uint64("tick", ret.Tick).Msg("checkpoint")
	return s.snapshots.Load(ctx, ret.ID)
}

// Restore replaces the state with the snapshot identified by id. It must be
// called between ticks; the tick counter is left unchanged.
func (s *Service[S]) Restore(ctx context.Context, id string) error {
	aSnapshot, err := s.snapshots.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}
	s.conductor.Mutate(func(state *S) {
		*state = aSnapshot.State
	})
	s.logger.Debug().Str("snapshot", id).Uint64("tick", aSnapshot.Tick).Msg("restore")
	return nil
}

// Snapshots lists stored snapshots.
func (s *Service[S]) Snapshots(ctx context.Context) ([]*snapshot.Snapshot[S], error) {
	return s.snapshots.List(ctx)
}

// DeleteSnapshot removes a stored snapshot.
func (s *Service[S]) DeleteSnapshot(ctx context.Context, id string) error {
	return s.snapshots.Delete(ctx, id)
}
