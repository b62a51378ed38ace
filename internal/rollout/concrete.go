package rollout

import (
	"strconv"
	"strings"

	"bennypowers.dev/abbrex/internal/node"
)

// ConcreteTree is a fully expanded abbreviation, ready for an emitter
type ConcreteTree struct {
	Children []*ConcreteNode `json:"children"`
}

// ConcreteNode is an element or text node of a ConcreteTree
type ConcreteNode struct {
	Name        string              `json:"name,omitempty"`
	Value       string              `json:"value,omitempty"`
	Attributes  []ConcreteAttribute `json:"attributes,omitempty"`
	SelfClosing bool                `json:"selfClosing,omitempty"`
	Repeat      *ConcreteRepeat     `json:"repeat,omitempty"`
	Children    []*ConcreteNode     `json:"children,omitempty"`
}

// ConcreteAttribute is an attribute of a ConcreteNode
type ConcreteAttribute struct {
	Name      string  `json:"name"`
	Value     *string `json:"value,omitempty"`
	ValueType string  `json:"valueType"`
	Boolean   bool    `json:"boolean,omitempty"`
	Implied   bool    `json:"implied,omitempty"`
}

// ConcreteRepeat tells which copy of a repeated node this is
type ConcreteRepeat struct {
	Count int `json:"count"`
	Index int `json:"index"`
}

func newConcreteTree(t *node.Tree) *ConcreteTree {
	return &ConcreteTree{Children: concreteChildren(t, t.Root())}
}

func concreteChildren(t *node.Tree, id node.ID) []*ConcreteNode {
	ids := t.Children(id)
	if len(ids) == 0 {
		return nil
	}
	out := make([]*ConcreteNode, len(ids))
	for i, child := range ids {
		n := t.Node(child)
		c := &ConcreteNode{
			Name:        n.Name,
			Value:       n.Value,
			SelfClosing: n.SelfClosing,
		}
		for _, a := range n.Attributes {
			attr := ConcreteAttribute{
				Name:      a.Name,
				ValueType: a.ValueType.String(),
				Boolean:   a.Boolean,
				Implied:   a.Implied,
			}
			if a.HasValue() {
				v := a.ValueString()
				attr.Value = &v
			}
			c.Attributes = append(c.Attributes, attr)
		}
		if n.Repeat != nil {
			c.Repeat = &ConcreteRepeat{Count: n.Repeat.Count, Index: n.Repeat.Index}
		}
		c.Children = concreteChildren(t, child)
		out[i] = c
	}
	return out
}

// Len returns the number of nodes in the tree
func (t *ConcreteTree) Len() int {
	count := 0
	t.Walk(func(*ConcreteNode, int) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node in document order. Returning false from fn skips
// the children of the visited node.
func (t *ConcreteTree) Walk(fn func(n *ConcreteNode, level int) bool) {
	walkConcrete(t.Children, 0, fn)
}

func walkConcrete(nodes []*ConcreteNode, level int, fn func(*ConcreteNode, int) bool) {
	for _, n := range nodes {
		if fn(n, level) {
			walkConcrete(n.Children, level+1, fn)
		}
	}
}

// String renders the tree in tag notation for debugging: text nodes are
// bare, repeated nodes carry @index.
func (t *ConcreteTree) String() string {
	var b strings.Builder
	for _, n := range t.Children {
		n.write(&b)
	}
	return b.String()
}

func (n *ConcreteNode) write(b *strings.Builder) {
	if n.Name == "" && len(n.Attributes) == 0 {
		b.WriteString(n.Value)
		for _, c := range n.Children {
			c.write(b)
		}
		return
	}

	name := n.Name
	if name == "" {
		name = "?"
	}
	b.WriteByte('<')
	b.WriteString(name)
	if n.Repeat != nil {
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(n.Repeat.Index))
	}
	for _, a := range n.Attributes {
		b.WriteByte(' ')
		if a.Implied {
			b.WriteByte('!')
		}
		b.WriteString(a.Name)
		if a.Boolean {
			b.WriteByte('.')
		}
		if a.Value != nil {
			b.WriteString(`="` + *a.Value + `"`)
		}
	}
	if n.SelfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	b.WriteString(n.Value)
	for _, c := range n.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}
