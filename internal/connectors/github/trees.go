package github

import (
	"context"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// ListTree returns the repository's recursive file listing at ref. An
// empty ref resolves the default branch first. An empty repository (409
// from the trees API) yields an empty listing with no error. The boolean
// is GitHub's truncated flag: when set, the listing was capped server
// side and may be missing entries.
func (g *Gateway) ListTree(ctx context.Context, owner, repo, ref string) ([]domain.TreeEntry, bool, error) {
	resolved, err := g.resolveRef(ctx, owner, repo, ref)
	if err != nil {
		return nil, false, toDomainError(err, "resolve ref")
	}

	tree, err := g.client.GetTree(ctx, owner, repo, resolved)
	if err != nil {
		if IsConflict(err) {
			// No commits yet. Not an error for listing purposes.
			return nil, false, nil
		}
		return nil, false, toDomainError(err, "list tree")
	}

	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		path := entry.GetPath()
		if path == "" {
			continue
		}
		entryType := entry.GetType()
		if entryType != domain.EntryBlob && entryType != domain.EntryTree {
			// Submodule commits and anything else the API may grow.
			continue
		}
		entries = append(entries, domain.TreeEntry{Path: path, Type: entryType})
	}

	return entries, tree.GetTruncated(), nil
}
