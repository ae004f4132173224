package memory

import (
	"context"
	"fmt"

	"github.com/viant/lockstep/service/dao"
	"github.com/viant/lockstep/service/dao/snapshot"
	"github.com/viant/lockstep/service/dao/store"
)

type record struct {
	id   string
	data []byte
}

// Service keeps JSON encoded snapshots in memory; every Load decodes a fresh
// copy.
type Service[S any] struct {
	records *store.MemoryStore[record]
}

// New creates an in-memory snapshot store.
func New[S any]() *Service[S] {
	return &Service[S]{records: store.NewMemoryStore[record](func(r *record) string { return r.id })}
}

// Save encodes and stores a snapshot.
func (s *Service[S]) Save(ctx context.Context, aSnapshot *snapshot.Snapshot[S]) error {
	if aSnapshot == nil {
		return dao.ErrNilEntity
	}
	if err := snapshot.ValidateID(aSnapshot.ID); err != nil {
		return err
	}
	data, err := snapshot.Encode(aSnapshot)
	if err != nil {
		return err
	}
	return s.records.Save(ctx, &record{id: aSnapshot.ID, data: data})
}

// Load decodes the snapshot stored under id.
func (s *Service[S]) Load(ctx context.Context, id string) (*snapshot.Snapshot[S], error) {
	if err := snapshot.ValidateID(id); err != nil {
		return nil, err
	}
	r, err := s.records.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return snapshot.Decode[S](r.data)
}

// Delete removes a snapshot.
func (s *Service[S]) Delete(ctx context.Context, id string) error {
	if err := snapshot.ValidateID(id); err != nil {
		return err
	}
	if err := s.records.Delete(ctx, id); err != nil {
		return fmt.Errorf("snapshot %s: %w", id, err)
	}
	return nil
}

// List decodes every stored snapshot ordered by id.
func (s *Service[S]) List(ctx context.Context) ([]*snapshot.Snapshot[S], error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	ret := make([]*snapshot.Snapshot[S], 0, len(records))
	for _, r := range records {
		aSnapshot, err := snapshot.Decode[S](r.data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", r.id, err)
		}
		ret = append(ret, aSnapshot)
	}
	return ret, nil
}

var _ dao.Service[string, snapshot.Snapshot[int]] = (*Service[int])(nil)
