package driving

import (
	"context"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// TreeService renders live directory trees from the GitHub API.
type TreeService interface {
	// DirectoryTree fetches the repository listing at ref and renders it
	// as an indented diagram. maxDepth nil means unlimited depth.
	DirectoryTree(ctx context.Context, owner, repo, ref string, maxDepth *int) (string, error)
}

// ContentsService fetches file or directory contents from the GitHub API.
type ContentsService interface {
	// Contents returns a file's raw text, or a directory listing
	// rendered as a tree diagram.
	Contents(ctx context.Context, owner, repo, path, ref string) (string, error)
}

// IssueService fetches issue threads from the GitHub API.
type IssueService interface {
	// IssueContext returns an issue with its comment thread.
	IssueContext(ctx context.Context, owner, repo string, number int) (*domain.IssueContext, error)
}

// DiffService fetches unified diffs from the GitHub API.
type DiffService interface {
	// Diff returns the diff selected by spec (PR or ref comparison).
	Diff(ctx context.Context, owner, repo string, spec domain.DiffSpec) (*domain.Diff, error)
}
