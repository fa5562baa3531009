package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested row or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on unique-constraint conflicts.
	ErrAlreadyExists = errors.New("already exists")
)
