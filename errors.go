package ggo

import "errors"

var (
	// ErrConfig means the game configuration could not be loaded or is
	// invalid.
	ErrConfig = errors.New("ggo: invalid configuration")

	// ErrResourceNotFound means a resource path did not resolve to a
	// file in the context's filesystem.
	ErrResourceNotFound = errors.New("ggo: resource not found")

	// ErrNoFilesystem means a filesystem operation was attempted on a
	// context constructed without one.
	ErrNoFilesystem = errors.New("ggo: no filesystem configured")
)
