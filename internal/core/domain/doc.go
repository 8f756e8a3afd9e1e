// Package domain defines the core business entities for ghsb.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - TreeEntry / TreeNode: a repository's flat listing and its
//     reconstructed hierarchy, with the tree renderer
//   - IssueContext: an issue thread with its comments
//   - Diff / DiffSpec: unified diffs and how to select them
//   - Repository key derivation for digest artifacts
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
