package driving

import "context"

// IngestResult is the outcome of one ingestion attempt.
// Ingestion failures come back as a false OK with a descriptive message,
// never as a panic past this boundary.
type IngestResult struct {
	// OK is true only for a successful NEW ingestion. An already
	// processed repository yields OK=false with OutputPath still set.
	OK bool

	// Message is a human-readable outcome description.
	Message string

	// OutputPath is the digest file location, empty when ingestion
	// failed before producing one.
	OutputPath string
}

// IngestionService runs the external ingestion tool exactly once per
// repository and records completion durably.
type IngestionService interface {
	// Ingest processes repoURL if it has not been processed before.
	Ingest(ctx context.Context, repoURL string) IngestResult
}

// RetrievalService serves data from processed repository digests.
type RetrievalService interface {
	// EnsureProcessed ingests repoURL when no digest exists yet, then
	// reports whether the digest is available.
	EnsureProcessed(ctx context.Context, repoURL string) (bool, IngestResult)

	// DirectoryTree returns the digest's directory tree block.
	DirectoryTree(repoURL string) (string, error)

	// FileContent returns one file's content from the digest index.
	// A path absent from the index yields a fixed "not found" message
	// with no error.
	FileContent(repoURL, filePath string) (string, error)

	// Digest returns the full raw digest text.
	Digest(repoURL string) (string, error)
}
