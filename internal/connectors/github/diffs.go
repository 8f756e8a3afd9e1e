package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// getPullRequestDiff fetches a pull request's unified diff text.
func (c *Client) getPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	diff, resp, err := c.gh.PullRequests.GetRaw(ctx, owner, repo, number, gh.RawOptions{Type: gh.Diff})
	if err != nil {
		return "", c.wrapError(err, "get pull request diff")
	}

	c.updateRateLimitFromResponse(resp)
	return diff, nil
}

// getCompareDiff fetches the unified diff between two refs.
func (c *Client) getCompareDiff(ctx context.Context, owner, repo, base, head string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	diff, resp, err := c.gh.Repositories.CompareCommitsRaw(
		ctx, owner, repo, base, head, gh.RawOptions{Type: gh.Diff},
	)
	if err != nil {
		return "", c.wrapError(err, "compare refs")
	}

	c.updateRateLimitFromResponse(resp)
	return diff, nil
}

// GetDiff fetches a unified diff, either for a pull request or between a
// base/head ref pair. The spec is validated before any API call.
func (g *Gateway) GetDiff(ctx context.Context, owner, repo string, spec domain.DiffSpec) (*domain.Diff, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if spec.IsPR() {
		content, err := g.client.getPullRequestDiff(ctx, owner, repo, spec.PRNumber)
		if err != nil {
			return nil, toDomainError(err, "get pull request diff")
		}
		return &domain.Diff{
			Content:  content,
			Source:   domain.DiffSourcePR,
			PRNumber: spec.PRNumber,
		}, nil
	}

	content, err := g.client.getCompareDiff(ctx, owner, repo, spec.BaseRef, spec.HeadRef)
	if err != nil {
		return nil, toDomainError(err, "compare refs")
	}
	return &domain.Diff{
		Content: content,
		Source:  domain.DiffSourceCompare,
		BaseRef: spec.BaseRef,
		HeadRef: spec.HeadRef,
	}, nil
}
