package mcp

import (
	"context"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
)

// mockIngestion returns a canned ingestion result.
type mockIngestion struct {
	result driving.IngestResult
}

func (m *mockIngestion) Ingest(_ context.Context, _ string) driving.IngestResult {
	return m.result
}

// mockRetrieval serves canned digest lookups.
type mockRetrieval struct {
	available bool
	result    driving.IngestResult
	file      string
	tree      string
	digest    string
	err       error
}

func (m *mockRetrieval) EnsureProcessed(_ context.Context, _ string) (bool, driving.IngestResult) {
	return m.available, m.result
}

func (m *mockRetrieval) DirectoryTree(_ string) (string, error) {
	return m.tree, m.err
}

func (m *mockRetrieval) FileContent(_, _ string) (string, error) {
	return m.file, m.err
}

func (m *mockRetrieval) Digest(_ string) (string, error) {
	return m.digest, m.err
}

// mockRepo backs the live GitHub tools.
type mockRepo struct {
	tree     string
	contents string
	issue    *domain.IssueContext
	diff     *domain.Diff
	err      error
}

func (m *mockRepo) DirectoryTree(_ context.Context, _, _, _ string, _ *int) (string, error) {
	return m.tree, m.err
}

func (m *mockRepo) Contents(_ context.Context, _, _, _, _ string) (string, error) {
	return m.contents, m.err
}

func (m *mockRepo) IssueContext(_ context.Context, _, _ string, _ int) (*domain.IssueContext, error) {
	return m.issue, m.err
}

func (m *mockRepo) Diff(_ context.Context, _, _ string, _ domain.DiffSpec) (*domain.Diff, error) {
	return m.diff, m.err
}

// newTestPorts builds a Ports with every service mocked.
func newTestPorts(retrieval *mockRetrieval, repo *mockRepo) *Ports {
	if retrieval == nil {
		retrieval = &mockRetrieval{}
	}
	if repo == nil {
		repo = &mockRepo{}
	}
	return &Ports{
		Ingestion: &mockIngestion{},
		Retrieval: retrieval,
		Trees:     repo,
		Contents:  repo,
		Issues:    repo,
		Diffs:     repo,
	}
}
