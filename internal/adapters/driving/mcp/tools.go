package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghsb/internal/core/domain"
)

// TreeInput is the input schema for the get_directory_tree tool.
type TreeInput struct {
	Owner    string `json:"owner" jsonschema:"repository owner (user or organisation)"`
	Repo     string `json:"repo" jsonschema:"repository name"`
	Ref      string `json:"ref,omitempty" jsonschema:"branch, tag or commit (default branch when omitted)"`
	MaxDepth *int   `json:"max_depth,omitempty" jsonschema:"limit tree depth; omit for the full tree"`
}

// TreeOutput is the output schema for the get_directory_tree tool.
type TreeOutput struct {
	DirectoryTree string `json:"directory_tree"`
}

// ContentsInput is the input schema for the get_repo_contents tool.
type ContentsInput struct {
	Owner string `json:"owner" jsonschema:"repository owner (user or organisation)"`
	Repo  string `json:"repo" jsonschema:"repository name"`
	Path  string `json:"path,omitempty" jsonschema:"file or directory path (repository root when omitted)"`
	Ref   string `json:"ref,omitempty" jsonschema:"branch, tag or commit (default branch when omitted)"`
}

// ContentsOutput is the output schema for the get_repo_contents tool.
type ContentsOutput struct {
	Contents string `json:"contents"`
}

// IssueInput is the input schema for the get_issue_context tool.
type IssueInput struct {
	Owner       string `json:"owner" jsonschema:"repository owner (user or organisation)"`
	Repo        string `json:"repo" jsonschema:"repository name"`
	IssueNumber int    `json:"issue_number" jsonschema:"issue number"`
}

// IssueOutput is the output schema for the get_issue_context tool.
type IssueOutput struct {
	Issue *domain.IssueContext `json:"issue"`
}

// DiffInput is the input schema for the get_code_diff tool.
type DiffInput struct {
	Owner    string `json:"owner" jsonschema:"repository owner (user or organisation)"`
	Repo     string `json:"repo" jsonschema:"repository name"`
	PRNumber int    `json:"pr_number,omitempty" jsonschema:"pull request number (mutually exclusive with base_ref/head_ref)"`
	BaseRef  string `json:"base_ref,omitempty" jsonschema:"comparison base ref"`
	HeadRef  string `json:"head_ref,omitempty" jsonschema:"comparison head ref"`
}

// DiffOutput is the output schema for the get_code_diff tool.
type DiffOutput struct {
	Diff *domain.Diff `json:"diff"`
}

// FileContentInput is the input schema for the get_file_content tool.
type FileContentInput struct {
	RepoURL  string `json:"repo_url" jsonschema:"GitHub repository URL, e.g. https://github.com/owner/repo"`
	FilePath string `json:"file_path" jsonschema:"path of the file inside the repository"`
}

// FileContentOutput is the output schema for the get_file_content tool.
type FileContentOutput struct {
	Content string `json:"content"`
}

// ProcessedRepoInput is the input schema for the get_processed_repo tool.
type ProcessedRepoInput struct {
	RepoURL string `json:"repo_url" jsonschema:"GitHub repository URL, e.g. https://github.com/owner/repo"`
}

// ProcessedRepoOutput is the output schema for the get_processed_repo tool.
type ProcessedRepoOutput struct {
	Message string `json:"message"`
	Digest  string `json:"digest,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_directory_tree",
		Description: "Get the directory tree of a GitHub repository as an indented diagram",
	}, s.handleDirectoryTree)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_repo_contents",
		Description: "Get a file's raw content, or a directory listing, from a GitHub repository",
	}, s.handleContents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_issue_context",
		Description: "Get a GitHub issue with its full comment thread",
	}, s.handleIssueContext)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_code_diff",
		Description: "Get the unified diff of a pull request or between two refs",
	}, s.handleDiff)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_file_content",
		Description: "Get one file's content from a previously ingested repository digest",
	}, s.handleFileContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_processed_repo",
		Description: "Ingest a repository if needed and return its full digest",
	}, s.handleProcessedRepo)
}

// handleDirectoryTree handles the get_directory_tree tool invocation.
func (s *Server) handleDirectoryTree(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TreeInput,
) (*mcp.CallToolResult, TreeOutput, error) {
	tree, err := s.ports.Trees.DirectoryTree(ctx, input.Owner, input.Repo, input.Ref, input.MaxDepth)
	if err != nil {
		return nil, TreeOutput{}, err
	}
	return nil, TreeOutput{DirectoryTree: tree}, nil
}

// handleContents handles the get_repo_contents tool invocation.
func (s *Server) handleContents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContentsInput,
) (*mcp.CallToolResult, ContentsOutput, error) {
	contents, err := s.ports.Contents.Contents(ctx, input.Owner, input.Repo, input.Path, input.Ref)
	if err != nil {
		return nil, ContentsOutput{}, err
	}
	return nil, ContentsOutput{Contents: contents}, nil
}

// handleIssueContext handles the get_issue_context tool invocation.
func (s *Server) handleIssueContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IssueInput,
) (*mcp.CallToolResult, IssueOutput, error) {
	issue, err := s.ports.Issues.IssueContext(ctx, input.Owner, input.Repo, input.IssueNumber)
	if err != nil {
		return nil, IssueOutput{}, err
	}
	return nil, IssueOutput{Issue: issue}, nil
}

// handleDiff handles the get_code_diff tool invocation.
func (s *Server) handleDiff(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiffInput,
) (*mcp.CallToolResult, DiffOutput, error) {
	spec := domain.DiffSpec{
		PRNumber: input.PRNumber,
		BaseRef:  input.BaseRef,
		HeadRef:  input.HeadRef,
	}
	diff, err := s.ports.Diffs.Diff(ctx, input.Owner, input.Repo, spec)
	if err != nil {
		return nil, DiffOutput{}, err
	}
	return nil, DiffOutput{Diff: diff}, nil
}

// handleFileContent handles the get_file_content tool invocation.
// A repository never seen before is ingested first, so the first call for
// a repo can take as long as a clone.
func (s *Server) handleFileContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FileContentInput,
) (*mcp.CallToolResult, FileContentOutput, error) {
	available, result := s.ports.Retrieval.EnsureProcessed(ctx, input.RepoURL)
	if !available {
		return nil, FileContentOutput{}, fmt.Errorf("repository not available: %s", result.Message)
	}

	content, err := s.ports.Retrieval.FileContent(input.RepoURL, input.FilePath)
	if err != nil {
		return nil, FileContentOutput{}, err
	}
	return nil, FileContentOutput{Content: content}, nil
}

// handleProcessedRepo handles the get_processed_repo tool invocation.
func (s *Server) handleProcessedRepo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessedRepoInput,
) (*mcp.CallToolResult, ProcessedRepoOutput, error) {
	available, result := s.ports.Retrieval.EnsureProcessed(ctx, input.RepoURL)
	if !available {
		return nil, ProcessedRepoOutput{}, fmt.Errorf("repository not available: %s", result.Message)
	}

	digest, err := s.ports.Retrieval.Digest(input.RepoURL)
	if err != nil {
		return nil, ProcessedRepoOutput{}, err
	}
	return nil, ProcessedRepoOutput{Message: result.Message, Digest: digest}, nil
}
