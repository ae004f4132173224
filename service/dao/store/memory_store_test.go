package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/lockstep/service/dao"
)

type record struct {
	ID    string
	Value int
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[record](func(r *record) string { return r.ID })

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, s.Save(ctx, &record{}), dao.ErrInvalidID)

	r := &record{ID: "b", Value: 1}
	require.NoError(t, s.Save(ctx, r))
	require.NoError(t, s.Save(ctx, &record{ID: "a", Value: 2}))
	r.Value = 100

	loaded, err := s.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Value)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	require.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), dao.ErrNotFound)
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	_, err = s.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}
