package tree

// Node is one node of a binary tree. Each node is owned by exactly one parent.
type Node struct {
	Value int64 `yaml:"value" json:"value"`
	Left  *Node `yaml:"left,omitempty" json:"left,omitempty"`
	Right *Node `yaml:"right,omitempty" json:"right,omitempty"`
}

// New returns a leaf holding v.
func New(v int64) *Node {
	return &Node{Value: v}
}

// WithLeft sets the left child and returns n for chaining.
func (n *Node) WithLeft(child *Node) *Node {
	n.Left = child
	return n
}

// WithRight sets the right child and returns n for chaining.
func (n *Node) WithRight(child *Node) *Node {
	n.Right = child
	return n
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Size returns the number of nodes in the tree rooted at n. A nil tree has size 0.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	return 1 + n.Left.Size() + n.Right.Size()
}

// Height returns the number of nodes on the longest root-to-leaf chain.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}
