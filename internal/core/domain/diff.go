package domain

import "fmt"

// Diff sources.
const (
	DiffSourcePR      = "pr"
	DiffSourceCompare = "compare"
)

// DiffSpec selects what to diff. Exactly one mode must be used: a pull
// request number, or a base/head ref pair.
type DiffSpec struct {
	PRNumber int
	BaseRef  string
	HeadRef  string
}

// Validate checks that the spec selects exactly one diff mode.
func (s DiffSpec) Validate() error {
	if s.PRNumber < 0 {
		return fmt.Errorf("%w: pr_number must be a non-negative integer", ErrInvalidInput)
	}
	if s.PRNumber == 0 && (s.BaseRef == "" || s.HeadRef == "") {
		return fmt.Errorf("%w: provide either pr_number or both base_ref and head_ref", ErrInvalidInput)
	}
	return nil
}

// IsPR reports whether the spec targets a pull request.
func (s DiffSpec) IsPR() bool {
	return s.PRNumber > 0
}

// Diff is a unified diff fetched from GitHub, with the mode it came from.
type Diff struct {
	Content  string `json:"diff_content"`
	Source   string `json:"source"`
	PRNumber int    `json:"pr_number,omitempty"`
	BaseRef  string `json:"base_ref,omitempty"`
	HeadRef  string `json:"head_ref,omitempty"`
}

// RepoContents is the result of a contents lookup: either the raw text of
// a single file, or the listing of a directory.
type RepoContents struct {
	IsDir   bool
	File    string
	Entries []TreeEntry
}
