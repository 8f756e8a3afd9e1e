package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ghsb resources.
	uriScheme = "ghsb://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Template for repository digests.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "digest/{owner}/{repo}",
		Name:        "repository-digest",
		Description: "Full text digest of an ingested GitHub repository",
		MIMEType:    "text/plain",
	}, s.handleDigestResource)
}

// handleDigestResource returns the digest for one repository.
func (s *Server) handleDigestResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	owner, repo := extractDigestRepo(req.Params.URI)
	if owner == "" || repo == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	digest, err := s.ports.Retrieval.Digest("https://github.com/" + owner + "/" + repo)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     digest,
		}},
	}, nil
}

// extractDigestRepo parses a URI like ghsb://digest/{owner}/{repo}.
func extractDigestRepo(uri string) (string, string) {
	const prefix = uriScheme + "digest/"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	rest := strings.TrimPrefix(uri, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}
