package store

import "errors"

// ErrNotFound is returned when a requested row or key does not exist.
var ErrNotFound = errors.New("not found")
