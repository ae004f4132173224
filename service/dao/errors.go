package dao

import "errors"

var (
	// ErrNotFound reports a snapshot id with nothing stored under it.
	ErrNotFound = errors.New("dao: not found")
	// ErrInvalidID reports an empty id, or one a store cannot use as a key
	// or file name.
	ErrInvalidID = errors.New("dao: invalid id")
	// ErrNilEntity reports a Save called without a snapshot.
	ErrNilEntity = errors.New("dao: nil entity")
)
