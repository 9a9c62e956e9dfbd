package ingest

import "errors"

// ErrMalformedBatch is returned when a candidate file or payload is
// not a JSON submission batch.
var ErrMalformedBatch = errors.New("malformed candidate batch")
