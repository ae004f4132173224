package fs

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/lockstep/service/dao"
	"github.com/viant/lockstep/service/dao/snapshot"
)

// Service stores every snapshot as <basePath>/<id>.json.
type Service[S any] struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ dao.Service[string, snapshot.Snapshot[int]] = (*Service[int])(nil)

// New creates a filesystem snapshot store, creating basePath if needed.
func New[S any](ctx context.Context, basePath string) (*Service[S], error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	fs := afs.New()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	return &Service[S]{
		basePath: url.Normalize(basePath, file.Scheme),
		fs:       fs,
	}, nil
}

// Save persists a snapshot.
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
	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.snapshotPath(aSnapshot.ID)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save snapshot to %s: %w", filePath, err)
	}
	return nil
}

// Load reads a snapshot by id.
func (s *Service[S]) Load(ctx context.Context, id string) (*snapshot.Snapshot[S], error) {
	if err := snapshot.ValidateID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	filePath := s.snapshotPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("snapshot %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	return snapshot.Decode[S](data)
}

// Delete removes a snapshot.
func (s *Service[S]) Delete(ctx context.Context, id string) error {
	if err := snapshot.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	filePath := s.snapshotPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check snapshot %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("snapshot %s: %w", id, dao.ErrNotFound)
	}
	return s.fs.Delete(ctx, filePath)
}

// List returns every stored snapshot ordered by id.
func (s *Service[S]) List(ctx context.Context) ([]*snapshot.Snapshot[S], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	var ret []*snapshot.Snapshot[S]
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", object.URL(), err)
		}
		aSnapshot, err := snapshot.Decode[S](data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", object.URL(), err)
		}
		ret = append(ret, aSnapshot)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret, nil
}

func (s *Service[S]) snapshotPath(id string) string {
	return url.Join(s.basePath, id+".json")
}
