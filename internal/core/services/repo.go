package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driven"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
	"github.com/custodia-labs/ghsb/internal/logger"
)

// Ensure the repo-facing services implement their interfaces.
var (
	_ driving.TreeService     = (*Repo)(nil)
	_ driving.ContentsService = (*Repo)(nil)
	_ driving.IssueService    = (*Repo)(nil)
	_ driving.DiffService     = (*Repo)(nil)
)

// Repo serves live repository views straight from the GitHub API:
// directory trees, file or directory contents, issue threads and diffs.
// Nothing here touches the digest store.
type Repo struct {
	gateway driven.Gateway
}

// NewRepo creates the repo service on top of a GitHub gateway.
func NewRepo(gateway driven.Gateway) *Repo {
	return &Repo{gateway: gateway}
}

// DirectoryTree fetches the repository listing at ref and renders it as
// an indented diagram. A nil maxDepth means unlimited depth.
func (s *Repo) DirectoryTree(ctx context.Context, owner, repo, ref string, maxDepth *int) (string, error) {
	if owner == "" || repo == "" {
		return "", fmt.Errorf("%w: owner and repo are required", domain.ErrInvalidInput)
	}

	entries, truncated, err := s.gateway.ListTree(ctx, owner, repo, ref)
	if err != nil {
		return "", err
	}
	if truncated {
		logger.Warn("tree listing for %s/%s was truncated upstream", owner, repo)
	}

	return domain.FormatTree(entries, owner+"/"+repo, maxDepth), nil
}

// Contents returns a file's raw text, or a directory listing rendered as
// a tree diagram. An empty path targets the repository root.
func (s *Repo) Contents(ctx context.Context, owner, repo, path, ref string) (string, error) {
	if owner == "" || repo == "" {
		return "", fmt.Errorf("%w: owner and repo are required", domain.ErrInvalidInput)
	}

	contents, err := s.gateway.GetContents(ctx, owner, repo, path, ref)
	if err != nil {
		return "", err
	}

	if !contents.IsDir {
		return contents.File, nil
	}

	// The contents API returns direct children with repository-rooted
	// paths. Strip the directory prefix so the render shows one level
	// under the requested directory, not the whole ancestry again.
	entries := make([]domain.TreeEntry, 0, len(contents.Entries))
	for _, entry := range contents.Entries {
		entries = append(entries, domain.TreeEntry{
			Path: strings.TrimPrefix(entry.Path, path+"/"),
			Type: entry.Type,
		})
	}

	displayName := owner + "/" + repo
	if path != "" {
		displayName += "/" + path
	}
	return domain.FormatTree(entries, displayName, nil), nil
}

// IssueContext returns an issue with its comment thread.
func (s *Repo) IssueContext(ctx context.Context, owner, repo string, number int) (*domain.IssueContext, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: owner and repo are required", domain.ErrInvalidInput)
	}
	if number <= 0 {
		return nil, fmt.Errorf("%w: issue number must be a positive integer", domain.ErrInvalidInput)
	}

	return s.gateway.GetIssueContext(ctx, owner, repo, number)
}

// Diff returns the diff selected by spec, either a pull request's diff
// or a base...head comparison.
func (s *Repo) Diff(ctx context.Context, owner, repo string, spec domain.DiffSpec) (*domain.Diff, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("%w: owner and repo are required", domain.ErrInvalidInput)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return s.gateway.GetDiff(ctx, owner, repo, spec)
}
