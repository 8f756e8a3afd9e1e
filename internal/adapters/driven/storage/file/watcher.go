package file

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// Watcher observes the data directory for external mutation. The
// processed index never forgets a key, so a digest file removed behind
// the server's back leaves the index claiming a repository is processed
// when its digest is gone. The watcher cannot repair that, but it makes
// the desync visible in the logs.
type Watcher struct {
	dataDir   string
	processed driven.ProcessedStore
	fs        *fsnotify.Watcher
}

// NewWatcher creates a watcher for dataDir. The directory must exist.
func NewWatcher(dataDir string, processed driven.ProcessedStore) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dataDir); err != nil {
		fs.Close()
		return nil, err
	}
	return &Watcher{dataDir: dataDir, processed: processed, fs: fs}, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("data dir watcher: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	// Only raw digests matter here; the JSON artifacts are rebuilt from
	// them and the processed index has its own lifecycle.
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, ".txt") {
		return
	}

	if w.processed.IsProcessed(name) {
		logger.Warn(
			"digest %s was removed externally but is still marked processed; requests for it will fail until the entry is cleared",
			name,
		)
	}
}
