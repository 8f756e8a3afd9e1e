package mcp

import (
	"github.com/custodia-labs/ghsb/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingestion processes repositories into digests.
	Ingestion driving.IngestionService

	// Retrieval serves data from processed digests.
	Retrieval driving.RetrievalService

	// Trees renders live directory trees.
	Trees driving.TreeService

	// Contents fetches live file or directory contents.
	Contents driving.ContentsService

	// Issues fetches issue threads.
	Issues driving.IssueService

	// Diffs fetches unified diffs.
	Diffs driving.DiffService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingestion == nil {
		return ErrMissingIngestionService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Trees == nil || p.Contents == nil || p.Issues == nil || p.Diffs == nil {
		return ErrMissingRepoServices
	}
	return nil
}
