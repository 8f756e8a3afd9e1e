package domain

import "time"

// IssueUser identifies the author of an issue or comment.
type IssueUser struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url,omitempty"`
}

// IssueComment is one comment in an issue thread. Comments whose author
// cannot be resolved are dropped by the gateway rather than surfaced with
// an empty login.
type IssueComment struct {
	User      IssueUser `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url,omitempty"`
}

// IssueContext is the structured view of a GitHub issue thread: the issue
// itself plus all fetched comments. Comments may be partial when a
// pagination page failed upstream; what was fetched is kept.
type IssueContext struct {
	Number        int            `json:"number"`
	Title         string         `json:"title"`
	Body          string         `json:"body,omitempty"`
	State         string         `json:"state"`
	HTMLURL       string         `json:"html_url"`
	User          IssueUser      `json:"user"`
	CreatedAt     time.Time      `json:"created_at"`
	CommentsCount int            `json:"comments_count"`
	Comments      []IssueComment `json:"comments"`
}
