package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
)

// IndexFilename is the processed-repository index file inside the data
// directory.
const IndexFilename = "processed_repos.json"

// Ensure ProcessedStore implements the interface.
var _ driven.ProcessedStore = (*ProcessedStore)(nil)

// ProcessedStore is a JSON-file implementation of driven.ProcessedStore.
// Keys map to null; presence alone means "processed". Entries are never
// removed, so digests only go stale if deleted externally.
type ProcessedStore struct {
	mu      sync.Mutex
	dataDir string
}

// NewProcessedStore creates a store rooted at dataDir. The directory is
// not created here: a missing directory simply means nothing has been
// processed yet.
func NewProcessedStore(dataDir string) *ProcessedStore {
	return &ProcessedStore{dataDir: dataDir}
}

// Path returns the index file location.
func (s *ProcessedStore) Path() string {
	return filepath.Join(s.dataDir, IndexFilename)
}

// IsProcessed reports whether key is recorded in the index.
func (s *ProcessedStore) IsProcessed(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.dataDir); err != nil {
		return false
	}

	index, err := s.load()
	if err != nil {
		return false
	}

	_, ok := index[key]
	return ok
}

// MarkProcessed records key in the index and rewrites it atomically.
func (s *ProcessedStore) MarkProcessed(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.load()
	if err != nil {
		return err
	}

	index[key] = nil

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode processed index: %w", err)
	}
	return writeFileAtomic(s.Path(), data, 0o644)
}

// load reads the index, treating a missing file as empty (caller must
// hold the lock).
func (s *ProcessedStore) load() (map[string]any, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	index := make(map[string]any)
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, s.Path(), err)
	}
	return index, nil
}
