package driven

import "context"

// Ingester runs the external ingestion tool for one repository.
// The concrete adapter invokes gitingest as a subprocess.
type Ingester interface {
	// Run ingests repoURL into outputPath and returns the tool's captured
	// stdout and stderr. A non-zero exit or deadline overrun is returned
	// as an error (domain.ErrIngestFailed / domain.ErrIngestTimeout);
	// stderr is still populated in that case so callers can report it.
	Run(ctx context.Context, repoURL, outputPath string) (stdout, stderr string, err error)
}
