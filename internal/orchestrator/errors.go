package orchestrator

import "errors"

var (
	// ErrAllSourcesSkipped means the quality gate rejected every source.
	// The error message carries the per-source reasons.
	ErrAllSourcesSkipped = errors.New("all generation sources skipped by quality gate")

	// ErrAllJobsFailed means every dispatched job failed at the backend.
	// Partial success is not an error.
	ErrAllJobsFailed = errors.New("all generation jobs failed")

	// ErrPassInFlight means the caller already has a pass running.
	ErrPassInFlight = errors.New("generation pass already in flight for this caller")

	// ErrInsufficientData means the inputs carry no usable signal at all.
	ErrInsufficientData = errors.New("insufficient preference data for generation")
)
