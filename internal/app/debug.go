package app

import (
	"strings"

	"i3-scratchpad/internal/tree"
	"i3-scratchpad/pkg/logger"
)

// dumpTree logs the subtree rooted at root, one line per node, indented by
// depth.
func dumpTree(log *logger.Logger, root *tree.Node) {
	root.Walk(func(n *tree.Node, depth int) bool {
		log.Debug("Scratchpad node", "node", describe(n, depth))
		return true
	})
}

func describe(n *tree.Node, depth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Kind)
	if n.Name != nil {
		b.WriteString(" ")
		b.WriteString(*n.Name)
	}
	if n.ID != nil {
		b.WriteString(" [id=")
		b.WriteString(formatID(*n.ID))
		b.WriteString("]")
	}
	return b.String()
}
