package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
	"github.com/custodia-labs/ghsb/internal/digest"
)

// msgFileNotFound is the fixed answer for a path absent from a digest
// index. Returned as content, not as an error.
const msgFileNotFound = "File not found in this repository."

// Ensure Retrieval implements the interface.
var _ driving.RetrievalService = (*Retrieval)(nil)

// Retrieval serves digest-backed lookups. Every read goes to disk; there
// is no in-memory cache, so external edits to the data directory are
// picked up on the next call.
type Retrieval struct {
	processed driven.ProcessedStore
	digests   driven.DigestStore
	ingestion driving.IngestionService
}

// NewRetrieval creates the retrieval service.
func NewRetrieval(processed driven.ProcessedStore, digests driven.DigestStore, ingestion driving.IngestionService) *Retrieval {
	return &Retrieval{
		processed: processed,
		digests:   digests,
		ingestion: ingestion,
	}
}

// EnsureProcessed ingests repoURL when no digest exists yet. The boolean
// reports whether a digest is available after the call, regardless of
// whether this call produced it.
func (s *Retrieval) EnsureProcessed(ctx context.Context, repoURL string) (bool, driving.IngestResult) {
	result := s.ingestion.Ingest(ctx, repoURL)
	if result.OK {
		return true, result
	}
	return result.Message == msgAlreadyProcessed, result
}

// DirectoryTree returns the digest's directory tree block.
func (s *Retrieval) DirectoryTree(repoURL string) (string, error) {
	files, err := s.loadIndex(repoURL)
	if err != nil {
		return "", err
	}

	tree, ok := files[digest.DirectoryTreeKey]
	if !ok {
		return "", fmt.Errorf("%w: digest has no directory tree", domain.ErrNotFound)
	}
	return tree, nil
}

// FileContent returns one file's content from the digest index. A path
// absent from the index yields a fixed message with no error, matching
// how the digest surface has always answered missing files.
func (s *Retrieval) FileContent(repoURL, filePath string) (string, error) {
	files, err := s.loadIndex(repoURL)
	if err != nil {
		return "", err
	}

	key := trimOneSlash(filePath)
	content, ok := files[key]
	if !ok {
		return msgFileNotFound, nil
	}
	return content, nil
}

// Digest returns the full raw digest text.
func (s *Retrieval) Digest(repoURL string) (string, error) {
	key, err := s.digestKey(repoURL)
	if err != nil {
		return "", err
	}

	if !s.processed.IsProcessed(key) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotProcessed, repoURL)
	}
	return s.digests.ReadDigest(key)
}

func (s *Retrieval) digestKey(repoURL string) (string, error) {
	if !domain.IsValidRepoURL(repoURL) {
		return "", fmt.Errorf("%w: not a GitHub repository URL: %s", domain.ErrInvalidInput, repoURL)
	}
	return domain.RepoKey(repoURL, domain.DigestExt)
}

// loadIndex reads the persisted per-file index for repoURL.
func (s *Retrieval) loadIndex(repoURL string) (map[string]string, error) {
	key, err := s.digestKey(repoURL)
	if err != nil {
		return nil, err
	}

	if !s.processed.IsProcessed(key) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotProcessed, repoURL)
	}

	indexKey := strings.TrimSuffix(key, domain.DigestExt) + domain.IndexExt
	return s.digests.LoadIndex(indexKey)
}

// trimOneSlash removes exactly one leading and one trailing slash. Inner
// slashes and doubled-up edges are kept as given.
func trimOneSlash(path string) string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return path
}
