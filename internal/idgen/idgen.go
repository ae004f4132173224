package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier; tests may replace it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier produced by NewFunc.
func New() string { return NewFunc() }
