// Package github adapts the GitHub REST API (via google/go-github) to the
// core's Gateway port.
//
// The adapter owns authentication (bearer token attachment), pagination
// and rate limiting; callers see flat tree listings, file/directory
// contents, issue threads and unified diffs in domain terms.
//
// # Rate Limiting
//
// Dual strategy: a proactive token bucket keeps sustained usage under the
// API quota, while the reactive side tracks X-RateLimit-* response
// headers and sleeps until reset when the remaining budget runs low.
//
// # Error Handling
//
// API failures carry their status code and URL as *APIError; quota
// exhaustion is *RateLimitError with the reset time. The IsNotFound /
// IsRateLimited / IsUnauthorized helpers let callers branch without
// unwrapping manually.
package github
