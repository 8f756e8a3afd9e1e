package domain

import (
	"sort"
	"strings"
)

// Rendering connectors and prefixes for the indented tree diagram.
const (
	connectorLast   = "└── "
	connectorMiddle = "├── "
	prefixLast      = "    "
	prefixMiddle    = "│   "

	treeHeader     = "Directory structure:"
	emptyTreeLabel = "    (Repository is empty or tree data not available)"
)

// FormatTree renders a flat entry list as an indented text diagram rooted
// at displayName (typically "owner/repo").
//
// maxDepth bounds how many levels below the root are shown: 0 renders the
// root line only, 1 renders the root's direct children, nil means
// unlimited. A negative maxDepth also yields the root-only view. Children
// at each level are sorted byte-wise lexicographically; directories are
// not segregated from files. The output depends only on the entry set and
// maxDepth, never on input order.
func FormatTree(entries []TreeEntry, displayName string, maxDepth *int) string {
	var b strings.Builder
	b.WriteString(treeHeader)
	b.WriteByte('\n')
	b.WriteString(connectorLast)
	b.WriteString(displayName)
	b.WriteByte('/')

	if len(entries) == 0 {
		b.WriteByte('\n')
		b.WriteString(emptyTreeLabel)
		return b.String()
	}

	if maxDepth != nil && *maxDepth < 0 {
		return b.String()
	}

	root := BuildTree(entries)
	writeTreeLevel(&b, root, prefixLast, 0, maxDepth)
	return b.String()
}

// RenderTree renders an already-built hierarchy. FormatTree is the usual
// entrypoint; this exists for callers that build the tree themselves.
func RenderTree(root *TreeNode, displayName string, maxDepth *int) string {
	var b strings.Builder
	b.WriteString(treeHeader)
	b.WriteByte('\n')
	b.WriteString(connectorLast)
	b.WriteString(displayName)
	b.WriteByte('/')

	if maxDepth != nil && *maxDepth < 0 {
		return b.String()
	}

	writeTreeLevel(&b, root, prefixLast, 0, maxDepth)
	return b.String()
}

// writeTreeLevel emits the children of node, which sit at the given depth
// below the root (direct children are depth 0), and recurses into
// tree-kind nodes that have children. Recursion into depth d happens only
// while d < maxDepth, so maxDepth 1 shows exactly the root's direct
// children.
func writeTreeLevel(b *strings.Builder, node *TreeNode, prefix string, depth int, maxDepth *int) {
	if maxDepth != nil && depth >= *maxDepth {
		return
	}

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		child := node.Children[name]
		isLast := i == len(names)-1

		connector := connectorMiddle
		if isLast {
			connector = connectorLast
		}

		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(name)
		if child.IsTree() {
			b.WriteByte('/')
		}

		if child.IsTree() && len(child.Children) > 0 {
			childPrefix := prefix + prefixMiddle
			if isLast {
				childPrefix = prefix + prefixLast
			}
			writeTreeLevel(b, child, childPrefix, depth+1, maxDepth)
		}
	}
}
