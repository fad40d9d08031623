package types

// Attribute is an XML attribute kept verbatim on a tree node.
type Attribute struct {
	Name  string
	Value string
}

// TreeNode is a group or layer in the project layer tree. Children order is
// draw order: the first child is drawn on top.
type TreeNode struct {
	Kind     NodeKind
	Name     string
	LayerID  string
	Checked  bool
	Expanded bool

	// Attributes holds every attribute not modelled above, in document order.
	Attributes []Attribute
	// Passthrough holds non-tree child elements (customproperties and the
	// like) as raw XML so they survive a round trip.
	Passthrough []byte

	Children []*TreeNode
}

func NewRootNode() *TreeNode {
	return &TreeNode{Kind: NodeKindGroup, Checked: true, Expanded: true}
}

// Clone returns a deep copy of the node and its subtree.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Attributes = append([]Attribute(nil), n.Attributes...)
	clone.Passthrough = append([]byte(nil), n.Passthrough...)
	clone.Children = make([]*TreeNode, 0, len(n.Children))
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return &clone
}

// Walk visits the node and its descendants depth first. Depth is 0 for n.
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(node *TreeNode, depth int), depth int) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}

// LayerIDs returns the layer ids referenced in the subtree, in tree order.
func (n *TreeNode) LayerIDs() []string {
	var ids []string
	n.Walk(func(node *TreeNode, _ int) {
		if node.Kind == NodeKindLayer && node.LayerID != "" {
			ids = append(ids, node.LayerID)
		}
	})
	return ids
}

// ProjectSnapshot is a read-only view of a project document.
type ProjectSnapshot struct {
	Title   string
	CRS     string
	Version string
	Root    *TreeNode
	Layers  []MapLayer
}
