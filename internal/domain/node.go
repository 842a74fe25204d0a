package domain

import "sort"

// Node is one filesystem entry in the size tree. A node is owned by its
// parent; children carry no reference back up. Identity within the tree is
// the sequence of names from the root.
type Node struct {
	Name      string
	Kind      Kind
	SizeBytes int64
	State     ScanState
	Protected bool
	ErrCount  int
	Children  []*Node
}

func (node *Node) IsDir() bool {
	return node.Kind == KindDir
}

// Child returns the named child, or nil. Child names are unique per parent.
func (node *Node) Child(name string) *Node {
	for _, child := range node.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// FindPath walks the name sequence down from this node.
func (node *Node) FindPath(path []string) *Node {
	current := node
	for _, name := range path {
		if current == nil {
			return nil
		}
		current = current.Child(name)
	}
	return current
}

// SortChildren orders this node's children largest first, ties broken by
// name ascending so identical trees always list identically.
func (node *Node) SortChildren() {
	sort.SliceStable(node.Children, func(i, j int) bool {
		left, right := node.Children[i], node.Children[j]
		if left.SizeBytes != right.SizeBytes {
			return left.SizeBytes > right.SizeBytes
		}
		return left.Name < right.Name
	})
}

// ItemCount reports the number of entries in this subtree including self.
func (node *Node) ItemCount() int {
	count := 1
	for _, child := range node.Children {
		count += child.ItemCount()
	}
	return count
}

// CloneDepth copies the subtree down to the given number of child levels.
// Depth 0 copies just this node with no children.
func (node *Node) CloneDepth(depth int) *Node {
	clone := *node
	clone.Children = nil
	if depth <= 0 {
		return &clone
	}
	if len(node.Children) > 0 {
		clone.Children = make([]*Node, 0, len(node.Children))
		for _, child := range node.Children {
			clone.Children = append(clone.Children, child.CloneDepth(depth-1))
		}
	}
	return &clone
}
