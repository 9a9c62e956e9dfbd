package team

import "errors"

// Sentinel kinds for team-selection errors. A team smaller than the
// requested size is deliberately not one of them: short teams are
// normal results.
var (
	ErrInvalidRequest = errors.New("invalid team request")
)
