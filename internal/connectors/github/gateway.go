package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
)

// Gateway adapts the GitHub API client to the core's driven port. All
// methods translate API failures into domain errors so callers never see
// go-github types.
type Gateway struct {
	client *Client
}

// Ensure Gateway implements the port.
var _ driven.Gateway = (*Gateway)(nil)

// NewGateway creates a gateway backed by client.
func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// Client returns the underlying API client.
func (g *Gateway) Client() *Client {
	return g.client
}

// resolveRef returns ref, or the repository's default branch when ref is
// empty. Costs one extra API call in the empty case.
func (g *Gateway) resolveRef(ctx context.Context, owner, repo, ref string) (string, error) {
	if ref != "" {
		return ref, nil
	}

	repository, err := g.client.GetRepository(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	branch := repository.GetDefaultBranch()
	if branch == "" {
		branch = "HEAD"
	}
	return branch, nil
}

// toDomainError maps a connector error onto the core's sentinel errors,
// keeping the original message as context.
func toDomainError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case IsNotFound(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrNotFound, operation, err)
	case IsRateLimited(err):
		return fmt.Errorf("%w: %s: %v", domain.ErrRateLimited, operation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%s: %w", operation, err)
	}
}
