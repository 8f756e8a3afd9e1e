package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrAlreadyProcessed indicates the repository digest already exists.
	// Ingestion treats this as a no-op answer, not a failure.
	ErrAlreadyProcessed = errors.New("repository already processed")

	// ErrNotProcessed indicates a digest lookup against a repository that
	// has not been ingested yet.
	ErrNotProcessed = errors.New("repository not processed")

	// ErrIngestTimeout indicates the external ingestion tool exceeded its
	// configured deadline and was killed.
	ErrIngestTimeout = errors.New("ingestion timed out")

	// ErrIngestFailed indicates the external ingestion tool exited
	// non-zero.
	ErrIngestFailed = errors.New("ingestion failed")

	// ErrIndexCorrupt indicates a persisted index file could not be
	// decoded. Reported as a descriptive result at the read site, never
	// propagated as a panic.
	ErrIndexCorrupt = errors.New("index file corrupt")

	// ErrRateLimited indicates the GitHub API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
