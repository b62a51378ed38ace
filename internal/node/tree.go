package node

import (
	"slices"
)

// Tree is an arena of abbreviation nodes. Children are owned by index list;
// parent and sibling links are back-references kept in sync by every edit.
// Detached nodes stay in the arena until Compact.
type Tree struct {
	nodes []Node
	root  ID
}

// New creates a tree holding only an empty root
func New() *Tree {
	t := &Tree{}
	t.root = t.Add(Node{})
	return t
}

// Root returns the ID of the root node
func (t *Tree) Root() ID {
	return t.root
}

// Node returns the node stored at id. The pointer is invalidated by Add.
func (t *Tree) Node(id ID) *Node {
	return &t.nodes[id]
}

// Add stores a detached node and returns its ID
func (t *Tree) Add(n Node) ID {
	n.parent, n.prev, n.next = None, None, None
	n.children = nil
	t.nodes = append(t.nodes, n)
	return ID(len(t.nodes) - 1)
}

// Parent returns the parent of id, or None
func (t *Tree) Parent(id ID) ID {
	return t.nodes[id].parent
}

// Next returns the following sibling of id, or None
func (t *Tree) Next(id ID) ID {
	return t.nodes[id].next
}

// Prev returns the preceding sibling of id, or None
func (t *Tree) Prev(id ID) ID {
	return t.nodes[id].prev
}

// Children returns a copy of the child list of id
func (t *Tree) Children(id ID) []ID {
	return slices.Clone(t.nodes[id].children)
}

// ChildCount returns the number of children of id
func (t *Tree) ChildCount(id ID) int {
	return len(t.nodes[id].children)
}

// FirstChild returns the first child of id, or None
func (t *Tree) FirstChild(id ID) ID {
	if c := t.nodes[id].children; len(c) > 0 {
		return c[0]
	}
	return None
}

// LastChild returns the last child of id, or None
func (t *Tree) LastChild(id ID) ID {
	if c := t.nodes[id].children; len(c) > 0 {
		return c[len(c)-1]
	}
	return None
}

// AppendChild detaches child and appends it to parent
func (t *Tree) AppendChild(parent, child ID) {
	t.Remove(child)
	p := &t.nodes[parent]
	p.children = append(p.children, child)
	t.nodes[child].parent = parent
	t.relink(parent)
}

// InsertBefore detaches child and inserts it in front of ref
func (t *Tree) InsertBefore(ref, child ID) {
	parent := t.nodes[ref].parent
	if parent == None {
		return
	}
	t.Remove(child)
	p := &t.nodes[parent]
	at := slices.Index(p.children, ref)
	p.children = slices.Insert(p.children, at, child)
	t.nodes[child].parent = parent
	t.relink(parent)
}

// Remove detaches id from its parent. The subtree stays in the arena.
func (t *Tree) Remove(id ID) {
	parent := t.nodes[id].parent
	if parent == None {
		return
	}
	p := &t.nodes[parent]
	if at := slices.Index(p.children, id); at >= 0 {
		p.children = slices.Delete(p.children, at, at+1)
	}
	n := &t.nodes[id]
	n.parent, n.prev, n.next = None, None, None
	t.relink(parent)
}

// Splice replaces id with its own children
func (t *Tree) Splice(id ID) {
	if t.nodes[id].parent == None {
		return
	}
	for _, child := range t.Children(id) {
		t.InsertBefore(id, child)
	}
	t.Remove(id)
}

func (t *Tree) relink(parent ID) {
	children := t.nodes[parent].children
	for i, c := range children {
		n := &t.nodes[c]
		n.prev, n.next = None, None
		if i > 0 {
			n.prev = children[i-1]
		}
		if i < len(children)-1 {
			n.next = children[i+1]
		}
	}
}

// Clone deep-copies the subtree at id into new detached nodes
func (t *Tree) Clone(id ID) ID {
	clone := t.Add(t.nodes[id].Clone())
	for _, child := range t.Children(id) {
		t.AppendChild(clone, t.Clone(child))
	}
	return clone
}

// Walk visits the descendants of id in document order. Returning false from
// fn skips the children of the visited node.
func (t *Tree) Walk(id ID, fn func(id ID, level int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id ID, level int, fn func(id ID, level int) bool) {
	for _, child := range t.Children(id) {
		if fn(child, level) {
			t.walk(child, level+1, fn)
		}
	}
}

// DeepestLast follows the last child of id down to a leaf
func (t *Tree) DeepestLast(id ID) ID {
	for {
		last := t.LastChild(id)
		if last == None {
			return id
		}
		id = last
	}
}

// Graft copies the top-level nodes of other in front of ref and returns their new IDs
func (t *Tree) Graft(ref ID, other *Tree) []ID {
	var ids []ID
	for _, child := range other.Children(other.Root()) {
		id := t.copyFrom(other, child)
		t.InsertBefore(ref, id)
		ids = append(ids, id)
	}
	return ids
}

func (t *Tree) copyFrom(other *Tree, id ID) ID {
	clone := t.Add(other.nodes[id].Clone())
	for _, child := range other.Children(id) {
		t.AppendChild(clone, t.copyFrom(other, child))
	}
	return clone
}

// Optimize splices away grouping nodes without a repeat, repeating until no
// such node is left. Repeated groups are kept for rollout.
func (t *Tree) Optimize() {
	for t.optimizeOnce(t.root) {
	}
}

func (t *Tree) optimizeOnce(id ID) bool {
	changed := false
	for _, child := range t.Children(id) {
		if t.optimizeOnce(child) {
			changed = true
		}
		n := &t.nodes[child]
		if n.IsGroup() && n.Repeat == nil {
			t.Splice(child)
			changed = true
		}
	}
	return changed
}

// Compact copies the reachable nodes into a new arena in document order and
// recomputes their depth. IDs of t are not valid in the result.
func (t *Tree) Compact() *Tree {
	out := &Tree{}
	root := t.nodes[t.root].Clone()
	out.root = out.Add(root)
	t.compactInto(out, t.root, out.root, 1)
	return out
}

func (t *Tree) compactInto(out *Tree, from, to ID, depth int) {
	for _, child := range t.Children(from) {
		n := t.nodes[child].Clone()
		n.Depth = depth
		id := out.Add(n)
		out.AppendChild(to, id)
		t.compactInto(out, child, id, depth+1)
	}
}

// Len returns the number of reachable nodes, excluding the root
func (t *Tree) Len() int {
	count := 0
	t.Walk(t.root, func(ID, int) bool {
		count++
		return true
	})
	return count
}

// Equal reports whether both trees have the same reachable structure and content
func (t *Tree) Equal(other *Tree) bool {
	return equalNodes(t, t.root, other, other.root)
}

func equalNodes(a *Tree, aid ID, b *Tree, bid ID) bool {
	an, bn := a.Node(aid), b.Node(bid)
	if an.Name != bn.Name || an.Value != bn.Value || an.SelfClosing != bn.SelfClosing {
		return false
	}
	if (an.Repeat == nil) != (bn.Repeat == nil) || (an.Repeat != nil && *an.Repeat != *bn.Repeat) {
		return false
	}
	if !slices.EqualFunc(an.Attributes, bn.Attributes, func(x, y Attribute) bool {
		return x.Name == y.Name && x.HasValue() == y.HasValue() && x.ValueString() == y.ValueString() &&
			x.Boolean == y.Boolean && x.Implied == y.Implied && x.ValueType == y.ValueType
	}) {
		return false
	}
	ac, bc := a.nodes[aid].children, b.nodes[bid].children
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !equalNodes(a, ac[i], b, bc[i]) {
			return false
		}
	}
	return true
}
