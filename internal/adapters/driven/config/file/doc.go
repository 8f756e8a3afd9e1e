// Package file provides the TOML-backed configuration store.
// Settings live in a single config.toml under the ghsb config directory
// and are flattened to dot-notation keys (github.token, data.dir,
// ingest.command, ingest.timeout_seconds, api.addr).
package file
