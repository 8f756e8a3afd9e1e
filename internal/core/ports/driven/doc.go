// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Gateway: GitHub REST access (trees, contents, issues, diffs)
//   - Ingester: the external gitingest subprocess
//   - ProcessedStore: durable "already ingested" record
//   - DigestStore: raw digest + parsed JSON index persistence
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
