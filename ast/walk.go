package ast

// Walk visits node and all of its descendants in source order. The visit
// function returns false to prune the subtree below a node.
func Walk(node Node, visit func(Node) bool) {
	if node == nil || !visit(node) {
		return
	}
	for _, child := range node.Children() {
		Walk(child, visit)
	}
}

// NodeAt returns the smallest node in the tree whose range contains pos, or
// nil when the position is outside the document entirely.
func NodeAt(root Node, pos Position) Node {
	if root == nil || !root.Range().Contains(pos) {
		return nil
	}
	best := root
	for _, child := range root.Children() {
		if hit := NodeAt(child, pos); hit != nil {
			best = hit
		}
	}
	return best
}

// IdentAt returns the identifier at pos, descending through whatever node
// encloses it, or a zero Ident when the position is not over one.
func IdentAt(root Node, pos Position) (Ident, bool) {
	node := NodeAt(root, pos)
	if node == nil {
		return Ident{}, false
	}
	if id, ok := node.(Ident); ok {
		return id, true
	}
	// The smallest hit may be a TypeName whose Ident shares its exact span.
	if tn, ok := node.(*TypeName); ok && tn.Ident.Span.Contains(pos) {
		return tn.Ident, true
	}
	return Ident{}, false
}
