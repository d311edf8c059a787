package engine

import "errors"

var (
	// ErrNoData marks an instrument whose sample sequence is empty after
	// cleaning. Reported per instrument, never aborts a batch.
	ErrNoData = errors.New("no data")

	// ErrBackendUnavailable marks the simulated quantum backend as absent.
	ErrBackendUnavailable = errors.New("simulated backend unavailable")
)
