package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/viant/lockstep/service/dao"
)

// Snapshot is a copy of a conductor state taken between ticks.
type Snapshot[S any] struct {
	ID        string    `json:"id"`
	Conductor string    `json:"conductor"`
	Tick      uint64    `json:"tick"`
	TakenAt   time.Time `json:"takenAt"`
	State     S         `json:"state"`
}

// Key returns the snapshot identifier.
func Key[S any](s *Snapshot[S]) string {
	return s.ID
}

// ValidateID returns dao.ErrInvalidID for an empty id or one that could
// escape a store location.
func ValidateID(id string) error {
	if id == "" || id == "." || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%q: %w", id, dao.ErrInvalidID)
	}
	return nil
}

// Encode serialises a snapshot, detaching it from the live state.
func Encode[S any](s *Snapshot[S]) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot %s: %w", s.ID, err)
	}
	return data, nil
}

// Decode restores a snapshot produced by Encode.
func Decode[S any](data []byte) (*Snapshot[S], error) {
	ret := &Snapshot[S]{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return ret, nil
}
