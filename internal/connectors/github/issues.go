package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

const (
	// commentsPerPage is the page size for issue comment listing.
	commentsPerPage = 100

	// maxCommentPages caps pagination so a pathological thread cannot
	// exhaust the rate limit budget (100 * 50 = 5000 comments).
	maxCommentPages = 50
)

// getIssue fetches a single issue.
func (c *Client) getIssue(ctx context.Context, owner, repo string, number int) (*gh.Issue, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issue, resp, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, c.wrapError(err, "get issue")
	}

	c.updateRateLimitFromResponse(resp)
	return issue, nil
}

// listIssueComments fetches one page of comments for an issue.
func (c *Client) listIssueComments(
	ctx context.Context, owner, repo string, number, page int,
) ([]*gh.IssueComment, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: commentsPerPage},
	}
	comments, resp, err := c.gh.Issues.ListComments(ctx, owner, repo, number, opts)
	if err != nil {
		return nil, 0, c.wrapError(err, "list issue comments")
	}

	c.updateRateLimitFromResponse(resp)
	return comments, resp.NextPage, nil
}

// GetIssueContext fetches an issue and its full comment thread. When a
// later comment page fails, comments fetched so far are kept and no
// error is returned: a partial thread beats none. Comments whose author
// cannot be resolved are dropped.
func (g *Gateway) GetIssueContext(ctx context.Context, owner, repo string, number int) (*domain.IssueContext, error) {
	issue, err := g.client.getIssue(ctx, owner, repo, number)
	if err != nil {
		return nil, toDomainError(err, "get issue")
	}

	result := &domain.IssueContext{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		State:         issue.GetState(),
		HTMLURL:       issue.GetHTMLURL(),
		CreatedAt:     issue.GetCreatedAt().Time,
		CommentsCount: issue.GetComments(),
		Comments:      []domain.IssueComment{},
	}
	if user := issue.GetUser(); user != nil {
		result.User = domain.IssueUser{Login: user.GetLogin(), HTMLURL: user.GetHTMLURL()}
	}

	page := 1
	for pages := 0; pages < maxCommentPages; pages++ {
		comments, nextPage, err := g.client.listIssueComments(ctx, owner, repo, number, page)
		if err != nil {
			break
		}

		for _, comment := range comments {
			user := comment.GetUser()
			if user == nil || user.GetLogin() == "" {
				continue
			}
			result.Comments = append(result.Comments, domain.IssueComment{
				User:      domain.IssueUser{Login: user.GetLogin(), HTMLURL: user.GetHTMLURL()},
				CreatedAt: comment.GetCreatedAt().Time,
				Body:      comment.GetBody(),
				HTMLURL:   comment.GetHTMLURL(),
			})
		}

		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	return result, nil
}
