package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// File extensions for the two per-repository artifacts.
const (
	// DigestExt is the extension of the raw digest artifact.
	DigestExt = ".txt"

	// IndexExt is the extension of the parsed per-file JSON index.
	IndexExt = ".json"
)

// githubHost is the only host repository keys are derived from.
const githubHost = "github.com"

// IsValidRepoURL reports whether the URL looks like a GitHub link.
// Intentionally loose: any string containing "github.com" passes, so an
// issue page or a subpath URL is accepted too.
func IsValidRepoURL(repoURL string) bool {
	return strings.Contains(repoURL, githubHost)
}

// RepoKey derives a stable, filesystem-safe filename from a repository
// URL: the path below github.com with every "/" replaced by "-", plus the
// given extension. "https://github.com/foo/bar" with ".txt" yields
// "foo-bar.txt".
//
// The URL must parse and its host must be github.com; anything else is
// rejected instead of producing a nonsense key.
func RepoKey(repoURL, ext string) (string, error) {
	if ext == "" {
		ext = DigestExt
	}

	u, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse repo URL: %v", ErrInvalidInput, err)
	}
	if u.Host != githubHost {
		return "", fmt.Errorf("%w: host %q is not %s", ErrInvalidInput, u.Host, githubHost)
	}

	tail := strings.Trim(u.Path, "/")
	if tail == "" {
		return "", fmt.Errorf("%w: repo URL has no path", ErrInvalidInput)
	}

	return strings.ReplaceAll(tail, "/", "-") + ext, nil
}
