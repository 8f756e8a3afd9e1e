package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsb/internal/core/domain"
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
)

// mockIngestion records calls and returns a canned result.
type mockIngestion struct {
	mu     sync.Mutex
	result driving.IngestResult
	urls   []string
}

func (m *mockIngestion) Ingest(_ context.Context, repoURL string) driving.IngestResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, repoURL)
	return m.result
}

func (m *mockIngestion) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urls...)
}

// mockRetrieval serves canned digest lookups.
type mockRetrieval struct {
	tree    string
	file    string
	digest  string
	err     error
	ensured bool
}

func (m *mockRetrieval) EnsureProcessed(_ context.Context, _ string) (bool, driving.IngestResult) {
	return m.ensured, driving.IngestResult{}
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

// mockRepo backs the live GitHub endpoints.
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

func newTestServer(t *testing.T, ingestion *mockIngestion, retrieval *mockRetrieval, repo *mockRepo) *Server {
	t.Helper()
	if ingestion == nil {
		ingestion = &mockIngestion{}
	}
	if retrieval == nil {
		retrieval = &mockRetrieval{}
	}
	if repo == nil {
		repo = &mockRepo{}
	}
	server, err := NewServer(&Services{
		Ingestion: ingestion,
		Retrieval: retrieval,
		Trees:     repo,
		Contents:  repo,
		Issues:    repo,
		Diffs:     repo,
	})
	require.NoError(t, err)
	return server
}

func doRequest(server *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("rejects missing services", func(t *testing.T) {
		_, err := NewServer(&Services{})
		assert.Error(t, err)
	})
}

func TestHandleProcess(t *testing.T) {
	t.Run("fresh ingestion returns 201", func(t *testing.T) {
		ingestion := &mockIngestion{result: driving.IngestResult{
			OK: true, Message: "Repository ingested successfully.", OutputPath: "data/foo-bar.txt",
		}}
		server := newTestServer(t, ingestion, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process",
			`{"repo_url":"https://github.com/foo/bar"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Repository ingested successfully.", resp["message"])
		assert.Equal(t, "data/foo-bar.txt", resp["output_path"])
	})

	t.Run("already processed returns 200", func(t *testing.T) {
		ingestion := &mockIngestion{result: driving.IngestResult{
			Message: "Repository was processed previously.", OutputPath: "data/foo-bar.txt",
		}}
		server := newTestServer(t, ingestion, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process",
			`{"repo_url":"https://github.com/foo/bar"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid URL returns 400", func(t *testing.T) {
		ingestion := &mockIngestion{result: driving.IngestResult{
			Message: "Invalid GitHub repository URL: https://example.com/x",
		}}
		server := newTestServer(t, ingestion, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process",
			`{"repo_url":"https://example.com/x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ingestion failure returns 500", func(t *testing.T) {
		ingestion := &mockIngestion{result: driving.IngestResult{
			Message: "Ingestion failed: exit code 1",
		}}
		server := newTestServer(t, ingestion, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process",
			`{"repo_url":"https://github.com/foo/bar"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing repo_url returns 400", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodPost, "/api/v1/process", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleDirectoryTree(t *testing.T) {
	t.Run("returns the rendered tree", func(t *testing.T) {
		repo := &mockRepo{tree: "Directory structure:\n└── o/r/\n"}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/directory-tree/o/r", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Success", resp["message"])
		assert.Contains(t, resp["directory_tree"], "o/r/")
	})

	t.Run("bad depth returns 400", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodGet, "/api/v1/directory-tree/o/r?depth=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing repository returns 404", func(t *testing.T) {
		repo := &mockRepo{err: fmt.Errorf("%w: repo", domain.ErrNotFound)}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/directory-tree/o/r", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rate limit returns 429", func(t *testing.T) {
		repo := &mockRepo{err: fmt.Errorf("%w: later", domain.ErrRateLimited)}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/directory-tree/o/r", "")

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestHandleContents(t *testing.T) {
	repo := &mockRepo{contents: "package main\n"}
	server := newTestServer(t, nil, nil, repo)

	rec := doRequest(server, http.MethodGet, "/api/v1/contents/o/r?path=main.go", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "package main\n", resp["contents"])
}

func TestHandleIssueContext(t *testing.T) {
	t.Run("returns the issue JSON", func(t *testing.T) {
		repo := &mockRepo{issue: &domain.IssueContext{Number: 7, Title: "Crash", State: "open"}}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/issue-context/o/r/7", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var issue domain.IssueContext
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &issue))
		assert.Equal(t, 7, issue.Number)
		assert.Equal(t, "Crash", issue.Title)
	})

	t.Run("non-numeric id returns 400", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodGet, "/api/v1/issue-context/o/r/seven", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleDiff(t *testing.T) {
	t.Run("pull request diff", func(t *testing.T) {
		repo := &mockRepo{diff: &domain.Diff{Content: "diff --git", Source: domain.DiffSourcePR, PRNumber: 42}}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/diff/o/r?pr_number=42", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var diff domain.Diff
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diff))
		assert.Equal(t, 42, diff.PRNumber)
		assert.Equal(t, domain.DiffSourcePR, diff.Source)
	})

	t.Run("non-numeric pr_number returns 400", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodGet, "/api/v1/diff/o/r?pr_number=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid spec returns 400", func(t *testing.T) {
		repo := &mockRepo{err: fmt.Errorf("%w: provide a mode", domain.ErrInvalidInput)}
		server := newTestServer(t, nil, nil, repo)

		rec := doRequest(server, http.MethodGet, "/api/v1/diff/o/r", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleDigestEndpoints(t *testing.T) {
	t.Run("dir-tree serves the digest tree", func(t *testing.T) {
		retrieval := &mockRetrieval{tree: "└── README.md\n"}
		server := newTestServer(t, nil, retrieval, nil)

		rec := doRequest(server, http.MethodGet,
			"/api/v1/dir-tree?repo_url=https://github.com/foo/bar", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "└── README.md\n", resp["content"])
	})

	t.Run("unprocessed repo gets 202 and background ingestion", func(t *testing.T) {
		ingestion := &mockIngestion{result: driving.IngestResult{OK: true}}
		retrieval := &mockRetrieval{err: domain.ErrNotProcessed}
		server := newTestServer(t, ingestion, retrieval, nil)

		rec := doRequest(server, http.MethodGet,
			"/api/v1/dir-tree?repo_url=https://github.com/foo/bar", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)

		// Ingestion is kicked off asynchronously.
		require.Eventually(t, func() bool {
			return len(ingestion.calls()) == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, "https://github.com/foo/bar", ingestion.calls()[0])
	})

	t.Run("get-file serves digest content", func(t *testing.T) {
		retrieval := &mockRetrieval{file: "package main\n"}
		server := newTestServer(t, nil, retrieval, nil)

		rec := doRequest(server, http.MethodGet,
			"/api/v1/get-file?repo_url=https://github.com/foo/bar&file_path=main.go", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get-file requires both parameters", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		rec := doRequest(server, http.MethodGet,
			"/api/v1/get-file?repo_url=https://github.com/foo/bar", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	t.Run("assigns an ID when absent", func(t *testing.T) {
		rec := doRequest(server, http.MethodGet, "/healthz", "")
		assert.NotEmpty(t, rec.Header().Get(headerRequestID))
	})

	t.Run("echoes a caller-provided ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(headerRequestID, "caller-id")
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, "caller-id", rec.Header().Get(headerRequestID))
	})
}
