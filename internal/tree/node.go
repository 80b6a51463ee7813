package tree

// Node is the normalized form of RawNode. Regular and floating children
// share one list; regular children come first.
type Node struct {
	ID       *uint64
	Kind     string
	Name     *string
	Children []*Node
}

// Leaf is a childless node copied out of the tree.
type Leaf struct {
	ID   *uint64
	Kind string
	Name *string
}

// Reduce converts raw into a Node tree.
func Reduce(raw *RawNode) *Node {
	if raw == nil {
		return nil
	}

	merged := make([]RawNode, 0, len(raw.Nodes)+len(raw.FloatingNodes))
	merged = append(merged, raw.Nodes...)
	merged = append(merged, raw.FloatingNodes...)

	node := &Node{
		ID:       raw.Window,
		Kind:     raw.Type,
		Name:     raw.Name,
		Children: make([]*Node, 0, len(merged)),
	}
	for i := range merged {
		node.Children = append(node.Children, Reduce(&merged[i]))
	}
	return node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasName reports whether n carries exactly the given name.
func (n *Node) HasName(name string) bool {
	return n.Name != nil && *n.Name == name
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk; Walk reports whether it ran to completion.
func (n *Node) Walk(fn func(node *Node, depth int) bool) bool {
	return n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// FindByName returns the first node in pre-order whose name equals target.
func (n *Node) FindByName(target string) (*Node, bool) {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if node.HasName(target) {
			found = node
			return false
		}
		return true
	})
	return found, found != nil
}

// Leaves flattens n into its childless descendants in document order. A
// childless n yields itself.
func (n *Node) Leaves() []Leaf {
	var leaves []Leaf
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			leaves = append(leaves, Leaf{ID: node.ID, Kind: node.Kind, Name: node.Name})
		}
		return true
	})
	return leaves
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}
