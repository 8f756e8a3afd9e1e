package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
	"github.com/custodia-labs/ghsb/internal/digest"
	"github.com/custodia-labs/ghsb/internal/logger"
)

const (
	// summaryMarker is where the useful part of the ingestion tool's
	// stdout begins.
	summaryMarker = "Repository:"

	// summaryHeading separates the appended summary from the digest body.
	summaryHeading = "\n\n--- Summary ---\n"

	// maxStderrLen caps how much tool stderr is echoed back in failure
	// messages.
	maxStderrLen = 500
)

// Fixed outcome messages. Callers and tests match on these exactly.
const (
	msgAlreadyProcessed = "Repository was processed previously."
	msgIngested         = "Repository ingested successfully."
)

// Ensure Ingestion implements the interface.
var _ driving.IngestionService = (*Ingestion)(nil)

// Ingestion runs the external ingestion tool once per repository and
// records completion in the processed index. Concurrent calls for the
// same repository are serialised on a per-key mutex so the tool never
// runs twice for one digest.
type Ingestion struct {
	processed driven.ProcessedStore
	digests   driven.DigestStore
	ingester  driven.Ingester

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIngestion creates the ingestion service.
func NewIngestion(processed driven.ProcessedStore, digests driven.DigestStore, ingester driven.Ingester) *Ingestion {
	return &Ingestion{
		processed: processed,
		digests:   digests,
		ingester:  ingester,
		locks:     make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex guarding one repository key, creating it on
// first use. Lock entries are never removed; the set of keys is small.
func (s *Ingestion) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// Ingest processes repoURL unless it was processed before. Failures are
// reported in the result, never panicked or propagated as raw errors:
// nothing past this boundary crashes a caller.
func (s *Ingestion) Ingest(ctx context.Context, repoURL string) driving.IngestResult {
	if !domain.IsValidRepoURL(repoURL) {
		return driving.IngestResult{
			Message: "Invalid GitHub repository URL: " + repoURL,
		}
	}

	key, err := domain.RepoKey(repoURL, domain.DigestExt)
	if err != nil {
		return driving.IngestResult{
			Message: fmt.Sprintf("Invalid GitHub repository URL: %v", err),
		}
	}

	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	outputPath := s.digests.Path(key)

	if s.processed.IsProcessed(key) {
		logger.Debug("ingest: %s already processed", key)
		return driving.IngestResult{Message: msgAlreadyProcessed, OutputPath: outputPath}
	}

	if err := s.digests.EnsureDir(); err != nil {
		return driving.IngestResult{
			Message: fmt.Sprintf("Failed to create data directory: %v", err),
		}
	}

	logger.Info("ingest: running tool for %s", repoURL)
	stdout, stderr, err := s.ingester.Run(ctx, repoURL, outputPath)
	if err != nil {
		// Remove whatever the tool managed to write before failing.
		if rmErr := s.digests.RemoveDigest(key); rmErr != nil {
			logger.Warn("ingest: cleanup of %s failed: %v", key, rmErr)
		}
		return driving.IngestResult{Message: ingestFailureMessage(err, stderr)}
	}

	if summary := extractSummary(stdout); summary != "" {
		if err := s.digests.AppendDigest(key, summaryHeading+summary); err != nil {
			logger.Warn("ingest: appending summary to %s failed: %v", key, err)
		}
	}

	if err := s.indexDigest(key); err != nil {
		logger.Warn("ingest: indexing %s failed: %v", key, err)
	}

	if err := s.processed.MarkProcessed(key); err != nil {
		return driving.IngestResult{
			Message: fmt.Sprintf("Failed to record processed repository: %v", err),
		}
	}

	return driving.IngestResult{OK: true, Message: msgIngested, OutputPath: outputPath}
}

// indexDigest parses the freshly written digest and persists the per-file
// index as a sibling JSON file.
func (s *Ingestion) indexDigest(key string) error {
	content, err := s.digests.ReadDigest(key)
	if err != nil {
		return err
	}

	files := digest.ParseString(content)

	indexKey := strings.TrimSuffix(key, domain.DigestExt) + domain.IndexExt
	return s.digests.SaveIndex(indexKey, files)
}

// extractSummary returns stdout from the first "Repository:" marker to
// the end, or "" when the marker never appears.
func extractSummary(stdout string) string {
	idx := strings.Index(stdout, summaryMarker)
	if idx < 0 {
		return ""
	}
	return strings.TrimRight(stdout[idx:], "\n")
}

// ingestFailureMessage builds the user-facing message for a failed tool
// run, echoing a truncated slice of stderr for diagnosis.
func ingestFailureMessage(err error, stderr string) string {
	detail := strings.TrimSpace(stderr)
	if len(detail) > maxStderrLen {
		detail = detail[:maxStderrLen]
	}

	switch {
	case errors.Is(err, domain.ErrIngestTimeout):
		if detail != "" {
			return fmt.Sprintf("Ingestion timed out: %s", detail)
		}
		return "Ingestion timed out."
	case detail != "":
		return fmt.Sprintf("Ingestion failed: %v: %s", err, detail)
	default:
		return fmt.Sprintf("Ingestion failed: %v", err)
	}
}
