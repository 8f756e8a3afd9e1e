// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query GitHub repository data: directory trees,
// file contents, issue threads, diffs and cached repository digests.
package mcp

import "errors"

// Errors for missing required ports.
var (
	// ErrMissingIngestionService is returned when the ingestion service is not provided.
	ErrMissingIngestionService = errors.New("mcp: ingestion service is required")

	// ErrMissingRetrievalService is returned when the retrieval service is not provided.
	ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

	// ErrMissingRepoServices is returned when any live repository service is not provided.
	ErrMissingRepoServices = errors.New("mcp: tree, contents, issue and diff services are required")
)
