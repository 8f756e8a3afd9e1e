// Package httpapi exposes the service over a JSON HTTP API.
//
// Live endpoints under /api/v1 proxy the GitHub API (directory trees,
// contents, issue threads, diffs); digest endpoints serve previously
// ingested repositories from disk and kick off background ingestion for
// repositories not seen before.
package httpapi
