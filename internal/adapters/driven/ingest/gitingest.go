// Package ingest invokes the external gitingest tool as a subprocess.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// DefaultCommand is the ingestion tool binary looked up on PATH.
const DefaultCommand = "gitingest"

// DefaultTimeout bounds a single ingestion run. Cloning and digesting a
// large repository is slow, but it must not be unbounded.
const DefaultTimeout = 10 * time.Minute

// Ensure Runner implements the interface.
var _ driven.Ingester = (*Runner)(nil)

// Runner executes the ingestion tool with a repository URL and an output
// path, capturing stdout and stderr.
type Runner struct {
	command string
	timeout time.Duration
}

// NewRunner creates a runner. Empty command or non-positive timeout fall
// back to the defaults.
func NewRunner(command string, timeout time.Duration) *Runner {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{command: command, timeout: timeout}
}

// Run invokes the tool as `<command> <repoURL> -o <outputPath>`.
// The context carries the caller's lifetime; the runner adds its own
// deadline on top so a hung clone cannot stall forever.
func (r *Runner) Run(ctx context.Context, repoURL, outputPath string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, repoURL, "-o", outputPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running %s %s -o %s", r.command, repoURL, outputPath)
	err := cmd.Run()

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return stdout.String(), stderr.String(),
				fmt.Errorf("%w after %s", domain.ErrIngestTimeout, r.timeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.String(), stderr.String(),
				fmt.Errorf("%w: exit code %d", domain.ErrIngestFailed, exitErr.ExitCode())
		}
		// Tool missing, not executable, etc.
		return stdout.String(), stderr.String(),
			fmt.Errorf("%w: %v", domain.ErrIngestFailed, err)
	}

	return stdout.String(), stderr.String(), nil
}
