package driven

import (
	"context"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// Gateway is the GitHub API boundary the core calls out to.
// The concrete adapter lives in internal/connectors/github and handles
// authentication, pagination and rate limiting internally.
type Gateway interface {
	// ListTree returns the repository's flat file listing at ref.
	// An empty ref resolves the repository's default branch. The boolean
	// is the API's truncated flag: true when the listing was capped and
	// may be incomplete. An empty repository yields an empty listing,
	// not an error.
	ListTree(ctx context.Context, owner, repo, ref string) ([]domain.TreeEntry, bool, error)

	// GetContents fetches a file's raw text, or a directory's listing,
	// at path. An empty ref means the default branch.
	GetContents(ctx context.Context, owner, repo, path, ref string) (*domain.RepoContents, error)

	// GetIssueContext fetches an issue with its full comment thread.
	// Comments fetched before a failed pagination page are kept.
	GetIssueContext(ctx context.Context, owner, repo string, number int) (*domain.IssueContext, error)

	// GetDiff fetches a unified diff for a pull request or a ref
	// comparison, depending on which mode spec selects.
	GetDiff(ctx context.Context, owner, repo string, spec domain.DiffSpec) (*domain.Diff, error)
}
