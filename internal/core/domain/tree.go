package domain

// Tree entry types as reported by the GitHub git trees API.
const (
	EntryBlob = "blob"
	EntryTree = "tree"
)

// TreeEntry is one path+type record from a repository's flat file listing.
type TreeEntry struct {
	// Path is the slash-separated path relative to the repository root.
	Path string `json:"path"`

	// Type is "blob" for files and "tree" for directories.
	Type string `json:"type"`
}

// TreeNode is a node in the reconstructed directory hierarchy.
// A node is tree-kind iff it may carry children; blob nodes have a nil
// children map.
type TreeNode struct {
	Kind     string
	Children map[string]*TreeNode
}

// IsTree reports whether the node is a directory.
func (n *TreeNode) IsTree() bool {
	return n.Kind == EntryTree
}

// BuildTree converts a flat list of tree entries into a nested hierarchy.
// The root is an implicit unnamed tree node whose children are the
// repository's top-level entries.
//
// Non-final path segments are always directories; an earlier blob at the
// same name is upgraded in place. The final segment records the entry's
// type (defaulting to blob), but never downgrades a node that already has
// children: tree kind wins on conflict regardless of input order. Empty
// segments from malformed paths are skipped. BuildTree never fails.
func BuildTree(entries []TreeEntry) *TreeNode {
	root := &TreeNode{Kind: EntryTree, Children: make(map[string]*TreeNode)}

	for _, entry := range entries {
		parts := splitPath(entry.Path)
		current := root

		for i, part := range parts {
			isLast := i == len(parts)-1

			if isLast {
				kind := entry.Type
				if kind == "" {
					kind = EntryBlob
				}

				node, ok := current.Children[part]
				if !ok {
					current.Children[part] = &TreeNode{Kind: kind}
					continue
				}
				// A node that already holds children stays a tree
				// even when listed again as a blob.
				if len(node.Children) > 0 {
					node.Kind = EntryTree
					continue
				}
				node.Kind = kind
				continue
			}

			node, ok := current.Children[part]
			if !ok || !node.IsTree() {
				node = &TreeNode{Kind: EntryTree, Children: make(map[string]*TreeNode)}
				current.Children[part] = node
			}
			if node.Children == nil {
				node.Children = make(map[string]*TreeNode)
			}
			current = node
		}
	}

	return root
}

// splitPath splits a slash-separated path, dropping empty segments
// produced by doubled or leading slashes.
func splitPath(path string) []string {
	parts := make([]string, 0, 8)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	return parts
}
