package thread

import "errors"

// ErrAlreadyStarted is raised when a constructor is added to, or Start is
// called on, a thread that has already been launched.
var ErrAlreadyStarted = errors.New("thread already started")
