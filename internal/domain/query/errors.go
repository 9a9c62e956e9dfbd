package query

import "errors"

// Sentinel kinds for query errors.
var (
	// ErrInvalidFilter marks a FilterSpec field outside its declared
	// domain. Callers may errors.Is against it.
	ErrInvalidFilter = errors.New("invalid filter")
)
