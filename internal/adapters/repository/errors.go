package repository

import "errors"

var (
	// ErrNotFound is returned when a candidate id is not in the pool.
	ErrNotFound = errors.New("candidate not found")
	// ErrInvalidLimit is returned when a top-n limit is less than one.
	ErrInvalidLimit = errors.New("invalid limit")
)
