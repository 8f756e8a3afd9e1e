package driven

// ProcessedStore is the durable record of which repository keys have
// completed ingestion. Membership is the single source of truth for
// "already ingested"; entries are never removed.
type ProcessedStore interface {
	// IsProcessed reports whether key has been marked. False when the
	// data directory or index file does not exist yet.
	IsProcessed(key string) bool

	// MarkProcessed durably records key. The rewrite is atomic so a
	// crash mid-write cannot truncate the index.
	MarkProcessed(key string) error
}

// DigestStore persists the per-repository artifacts: the raw digest text
// and the parsed per-file JSON index. There is no in-memory cache; every
// read goes to disk.
type DigestStore interface {
	// Path returns the on-disk location for an artifact filename.
	Path(filename string) string

	// EnsureDir creates the data directory if it is missing.
	EnsureDir() error

	// ReadDigest returns the raw digest text for filename.
	ReadDigest(filename string) (string, error)

	// AppendDigest appends text to an existing digest file.
	AppendDigest(filename, text string) error

	// RemoveDigest deletes a (possibly partial) digest file.
	// Missing files are not an error.
	RemoveDigest(filename string) error

	// SaveIndex writes the parsed file index as JSON, atomically.
	SaveIndex(filename string, files map[string]string) error

	// LoadIndex reads a persisted JSON index. A malformed file is
	// reported as domain.ErrIndexCorrupt.
	LoadIndex(filename string) (map[string]string, error)
}
