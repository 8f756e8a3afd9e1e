package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// newStubGateway starts a stub GitHub API server with the given routes
// and returns a gateway pointed at it. Routes are registered under the
// enterprise-style /api/v3/ prefix the client uses for custom base URLs.
func newStubGateway(t *testing.T, routes map[string]http.HandlerFunc) *Gateway {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc("/api/v3"+pattern, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClientWithHTTPClient(server.Client())
	client, err := client.WithBaseURL(server.URL)
	require.NoError(t, err)

	return NewGateway(client)
}

func TestGateway_ListTree(t *testing.T) {
	t.Run("returns blob and tree entries", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/git/trees/main": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"sha":"abc","truncated":false,"tree":[
					{"path":"src","type":"tree"},
					{"path":"src/main.go","type":"blob"},
					{"path":"vendored","type":"commit"}
				]}`)
			},
		})

		entries, truncated, err := gw.ListTree(context.Background(), "foo", "bar", "main")
		require.NoError(t, err)
		assert.False(t, truncated)
		assert.Equal(t, []domain.TreeEntry{
			{Path: "src", Type: domain.EntryTree},
			{Path: "src/main.go", Type: domain.EntryBlob},
		}, entries)
	})

	t.Run("empty ref resolves default branch", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"name":"bar","default_branch":"develop"}`)
			},
			"/repos/foo/bar/git/trees/develop": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"sha":"abc","tree":[{"path":"README.md","type":"blob"}]}`)
			},
		})

		entries, _, err := gw.ListTree(context.Background(), "foo", "bar", "")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "README.md", entries[0].Path)
	})

	t.Run("empty repository yields empty listing", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/empty/git/trees/main": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusConflict)
				fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
			},
		})

		entries, truncated, err := gw.ListTree(context.Background(), "foo", "empty", "main")
		require.NoError(t, err)
		assert.False(t, truncated)
		assert.Empty(t, entries)
	})

	t.Run("truncated flag is surfaced", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/big/git/trees/main": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"sha":"abc","truncated":true,"tree":[{"path":"a","type":"blob"}]}`)
			},
		})

		_, truncated, err := gw.ListTree(context.Background(), "foo", "big", "main")
		require.NoError(t, err)
		assert.True(t, truncated)
	})

	t.Run("missing repository maps to not found", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/gone/git/trees/main": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
			},
		})

		_, _, err := gw.ListTree(context.Background(), "foo", "gone", "main")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGateway_GetContents(t *testing.T) {
	t.Run("decodes file content", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("package main\n"))
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/contents/main.go": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprintf(w, `{"type":"file","path":"main.go","encoding":"base64","content":%q}`, encoded)
			},
		})

		contents, err := gw.GetContents(context.Background(), "foo", "bar", "main.go", "")
		require.NoError(t, err)
		assert.False(t, contents.IsDir)
		assert.Equal(t, "package main\n", contents.File)
	})

	t.Run("lists a directory", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/contents/src": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `[
					{"type":"dir","path":"src/pkg"},
					{"type":"file","path":"src/main.go"}
				]`)
			},
		})

		contents, err := gw.GetContents(context.Background(), "foo", "bar", "src", "")
		require.NoError(t, err)
		assert.True(t, contents.IsDir)
		assert.Equal(t, []domain.TreeEntry{
			{Path: "src/pkg", Type: domain.EntryTree},
			{Path: "src/main.go", Type: domain.EntryBlob},
		}, contents.Entries)
	})

	t.Run("missing path maps to not found", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/contents/nope.txt": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
			},
		})

		_, err := gw.GetContents(context.Background(), "foo", "bar", "nope.txt", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGateway_GetIssueContext(t *testing.T) {
	t.Run("fetches issue with comments", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/issues/7": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{
					"number":7,"title":"Crash on start","body":"It crashes.",
					"state":"open","html_url":"https://github.com/foo/bar/issues/7",
					"comments":2,"created_at":"2024-01-15T10:00:00Z",
					"user":{"login":"alice","html_url":"https://github.com/alice"}
				}`)
			},
			"/repos/foo/bar/issues/7/comments": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `[
					{"body":"Same here","created_at":"2024-01-16T09:00:00Z",
					 "user":{"login":"bob"},"html_url":"https://github.com/foo/bar/issues/7#c1"},
					{"body":"ghost comment","created_at":"2024-01-17T09:00:00Z"}
				]`)
			},
		})

		issueCtx, err := gw.GetIssueContext(context.Background(), "foo", "bar", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, issueCtx.Number)
		assert.Equal(t, "Crash on start", issueCtx.Title)
		assert.Equal(t, "open", issueCtx.State)
		assert.Equal(t, "alice", issueCtx.User.Login)
		assert.Equal(t, 2, issueCtx.CommentsCount)
		// Comment without a resolvable author is dropped.
		require.Len(t, issueCtx.Comments, 1)
		assert.Equal(t, "bob", issueCtx.Comments[0].User.Login)
		assert.Equal(t, "Same here", issueCtx.Comments[0].Body)
	})

	t.Run("keeps issue when comment listing fails", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/issues/8": func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `{"number":8,"title":"Flaky","state":"closed","comments":1}`)
			},
			"/repos/foo/bar/issues/8/comments": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		})

		issueCtx, err := gw.GetIssueContext(context.Background(), "foo", "bar", 8)
		require.NoError(t, err)
		assert.Equal(t, 8, issueCtx.Number)
		assert.Empty(t, issueCtx.Comments)
	})

	t.Run("missing issue maps to not found", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/issues/999": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"message":"Not Found"}`)
			},
		})

		_, err := gw.GetIssueContext(context.Background(), "foo", "bar", 999)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGateway_GetDiff(t *testing.T) {
	t.Run("fetches pull request diff", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/pulls/42": func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/vnd.github.v3.diff")
				fmt.Fprint(w, "diff --git a/main.go b/main.go\n")
			},
		})

		diff, err := gw.GetDiff(context.Background(), "foo", "bar", domain.DiffSpec{PRNumber: 42})
		require.NoError(t, err)
		assert.Equal(t, domain.DiffSourcePR, diff.Source)
		assert.Equal(t, 42, diff.PRNumber)
		assert.Contains(t, diff.Content, "diff --git")
	})

	t.Run("fetches ref comparison diff", func(t *testing.T) {
		gw := newStubGateway(t, map[string]http.HandlerFunc{
			"/repos/foo/bar/compare/main...feature": func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/vnd.github.v3.diff")
				fmt.Fprint(w, "diff --git a/x b/x\n")
			},
		})

		diff, err := gw.GetDiff(context.Background(), "foo", "bar", domain.DiffSpec{
			BaseRef: "main", HeadRef: "feature",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.DiffSourceCompare, diff.Source)
		assert.Equal(t, "main", diff.BaseRef)
		assert.Equal(t, "feature", diff.HeadRef)
	})

	t.Run("rejects an empty spec without calling the API", func(t *testing.T) {
		gw := NewGateway(NewClientWithHTTPClient(&http.Client{}))

		_, err := gw.GetDiff(context.Background(), "foo", "bar", domain.DiffSpec{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects a negative pull request number", func(t *testing.T) {
		gw := NewGateway(NewClientWithHTTPClient(&http.Client{}))

		_, err := gw.GetDiff(context.Background(), "foo", "bar", domain.DiffSpec{PRNumber: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestErrorHelpers(t *testing.T) {
	t.Run("IsNotFound", func(t *testing.T) {
		assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
		assert.True(t, IsNotFound(ErrRepoNotFound))
		assert.False(t, IsNotFound(&APIError{StatusCode: 500}))
		assert.False(t, IsNotFound(errors.New("other")))
	})

	t.Run("IsRateLimited", func(t *testing.T) {
		assert.True(t, IsRateLimited(&RateLimitError{ResetAt: time.Now()}))
		assert.False(t, IsRateLimited(&APIError{StatusCode: 403}))
	})

	t.Run("IsConflict", func(t *testing.T) {
		assert.True(t, IsConflict(&APIError{StatusCode: 409}))
		assert.False(t, IsConflict(&APIError{StatusCode: 404}))
	})
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	limiter := NewRateLimiter()

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "42")
	resp.Header.Set(HeaderRateLimit, "5000")
	resp.Header.Set(HeaderRateReset, "1700000000")

	limiter.UpdateFromResponse(resp)

	assert.Equal(t, 42, limiter.Remaining())
	assert.Equal(t, 5000, limiter.Limit())
	assert.Equal(t, time.Unix(1700000000, 0), limiter.ResetTime())
}

func TestRateLimiter_CheckRateLimit(t *testing.T) {
	t.Run("429 returns rate limit error", func(t *testing.T) {
		limiter := NewRateLimiter()
		resp := &http.Response{StatusCode: 429, Header: http.Header{}}
		resp.Header.Set(HeaderRetryAfter, "30")

		err := limiter.CheckRateLimit(resp)
		require.Error(t, err)
		assert.True(t, IsRateLimited(err))
	})

	t.Run("200 is clean", func(t *testing.T) {
		limiter := NewRateLimiter()
		resp := &http.Response{StatusCode: 200, Header: http.Header{}}

		assert.NoError(t, limiter.CheckRateLimit(resp))
	})
}
