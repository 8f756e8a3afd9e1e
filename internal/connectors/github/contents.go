package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// getContents fetches the contents API response for path. Exactly one of
// the two return values is non-nil on success: the first for a file, the
// second for a directory listing.
func (c *Client) getContents(
	ctx context.Context, owner, repo, path, ref string,
) (*gh.RepositoryContent, []*gh.RepositoryContent, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	fileContent, dirContents, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, nil, c.wrapError(err, "get contents")
	}

	c.updateRateLimitFromResponse(resp)
	return fileContent, dirContents, nil
}

// GetContents fetches a file's decoded text or a directory's listing at
// path. An empty path targets the repository root, which is always a
// directory. An empty ref means the default branch.
func (g *Gateway) GetContents(ctx context.Context, owner, repo, path, ref string) (*domain.RepoContents, error) {
	fileContent, dirContents, err := g.client.getContents(ctx, owner, repo, path, ref)
	if err != nil {
		return nil, toDomainError(err, "get contents")
	}

	if fileContent != nil {
		text, err := fileContent.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode content of %q: %w", path, err)
		}
		return &domain.RepoContents{File: text}, nil
	}

	entries := make([]domain.TreeEntry, 0, len(dirContents))
	for _, item := range dirContents {
		entryType := domain.EntryBlob
		if item.GetType() == "dir" {
			entryType = domain.EntryTree
		}
		entries = append(entries, domain.TreeEntry{
			Path: item.GetPath(),
			Type: entryType,
		})
	}

	return &domain.RepoContents{IsDir: true, Entries: entries}, nil
}
