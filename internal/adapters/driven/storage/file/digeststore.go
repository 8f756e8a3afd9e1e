package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
)

// Ensure DigestStore implements the interface.
var _ driven.DigestStore = (*DigestStore)(nil)

// DigestStore reads and writes the per-repository artifacts (raw digest
// text and parsed JSON index) inside the data directory.
type DigestStore struct {
	dataDir string
}

// NewDigestStore creates a store rooted at dataDir.
func NewDigestStore(dataDir string) *DigestStore {
	return &DigestStore{dataDir: dataDir}
}

// Path returns the on-disk location for an artifact filename.
func (s *DigestStore) Path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

// EnsureDir creates the data directory if it is missing.
func (s *DigestStore) EnsureDir() error {
	return os.MkdirAll(s.dataDir, 0o755)
}

// ReadDigest returns the raw digest text for filename.
func (s *DigestStore) ReadDigest(filename string) (string, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, filename)
		}
		return "", err
	}
	return string(data), nil
}

// AppendDigest appends text to an existing digest file.
func (s *DigestStore) AppendDigest(filename, text string) error {
	f, err := os.OpenFile(s.Path(filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RemoveDigest deletes a digest file; missing files are fine.
func (s *DigestStore) RemoveDigest(filename string) error {
	err := os.Remove(s.Path(filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveIndex writes the parsed per-file index as JSON, atomically.
func (s *DigestStore) SaveIndex(filename string, files map[string]string) error {
	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("encode digest index: %w", err)
	}
	return writeFileAtomic(s.Path(filename), data, 0o644)
}

// LoadIndex reads a persisted JSON index.
func (s *DigestStore) LoadIndex(filename string) (map[string]string, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, filename)
		}
		return nil, err
	}

	files := make(map[string]string)
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexCorrupt, filename, err)
	}
	return files, nil
}
