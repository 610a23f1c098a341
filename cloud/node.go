package cloud

import "golang.org/x/exp/slices"

// Node is a tree node: an optional component (absent only at the synthetic
// root), its children in LITERAL-before-variable order, a non-owning parent
// back-reference used solely to build a root-to-node chain, and an opaque
// meta bag written only by recomputePermissions and read only by the walker.
type Node struct {
	Component *CommandComponent
	Children  []*Node
	Parent    *Node
	Meta      map[string]any
}

func newNode(component *CommandComponent, parent *Node) *Node {
	return &Node{Component: component, Parent: parent, Meta: make(map[string]any)}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// getChild returns the existing child matching component by the §4.3
// equality rule, or nil.
func (n *Node) getChild(component *CommandComponent) *Node {
	for _, c := range n.Children {
		if c.Component.equalFor(component) {
			return c
		}
	}

	return nil
}

// addChild creates and appends a new child for component.
func (n *Node) addChild(component *CommandComponent) *Node {
	child := newNode(component, n)
	n.Children = append(n.Children, child)

	return child
}

// removeChild removes a child by identity.
func (n *Node) removeChild(target *Node) {
	n.Children = slices.DeleteFunc(n.Children, func(c *Node) bool { return c == target })
}

// sortChildren reorders children so LITERALs precede non-LITERALs, stable
// within each class (invariant 6, a walker precondition).
func (n *Node) sortChildren() {
	slices.SortStableFunc(n.Children, func(a, b *Node) int {
		ra, rb := rankOf(a.Component.Type), rankOf(b.Component.Type)

		return ra - rb
	})
}

func rankOf(t ComponentType) int {
	if t == Literal {
		return 0
	}

	return 1
}

// variableChildren returns this node's non-LITERAL children.
func (n *Node) variableChildren() []*Node {
	var out []*Node

	for _, c := range n.Children {
		if c.Component.Type != Literal {
			out = append(out, c)
		}
	}

	return out
}

// literalChildMatching returns the LITERAL child whose aliases include
// token, or nil. At most one can match: invariant 5 forbids overlapping
// LITERAL aliases among siblings.
func (n *Node) literalChildMatching(token string) *Node {
	for _, c := range n.Children {
		if c.Component.Type != Literal {
			break // LITERALs sort first; none further can match.
		}

		if c.Component.matchesAlias(token) {
			return c
		}
	}

	return nil
}

// chain walks the parent links from n up to (but excluding) the root,
// returning root-to-n component order.
func (n *Node) chain() []*CommandComponent {
	var out []*CommandComponent

	for cur := n; cur != nil && cur.Component != nil; cur = cur.Parent {
		out = append([]*CommandComponent{cur.Component}, out...)
	}

	return out
}
