package node

import (
	"strconv"
	"strings"
)

// String renders the tree in a compact tag notation, mainly for tests:
// groups become (...), repeats are written after the name as *N.
func (t *Tree) String() string {
	var b strings.Builder
	for _, child := range t.Children(t.root) {
		t.writeNode(&b, child)
	}
	return b.String()
}

func (t *Tree) writeNode(b *strings.Builder, id ID) {
	n := t.Node(id)
	if n.IsGroup() {
		b.WriteByte('(')
		for _, child := range t.Children(id) {
			t.writeNode(b, child)
		}
		b.WriteByte(')')
		writeRepeat(b, n.Repeat)
		return
	}

	name := n.Name
	if name == "" {
		name = "?"
	}
	b.WriteByte('<')
	b.WriteString(name)
	writeRepeat(b, n.Repeat)
	for _, a := range n.Attributes {
		b.WriteByte(' ')
		WriteAttribute(b, a)
	}
	if n.SelfClosing {
		b.WriteString(" /")
	}
	b.WriteByte('>')
	b.WriteString(n.Value)
	for _, child := range t.Children(id) {
		t.writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}

func writeRepeat(b *strings.Builder, r *Repeat) {
	if r == nil {
		return
	}
	b.WriteByte('*')
	if !r.Implicit {
		b.WriteString(strconv.Itoa(r.Count))
	}
	if r.Index > 0 {
		b.WriteByte('@')
		b.WriteString(strconv.Itoa(r.Index))
	}
}

// WriteAttribute renders a in name="value" notation with its flags
func WriteAttribute(b *strings.Builder, a Attribute) {
	if a.Implied {
		b.WriteByte('!')
	}
	b.WriteString(a.Name)
	if a.Boolean {
		b.WriteByte('.')
	}
	if !a.HasValue() {
		return
	}
	if a.Name != "" {
		b.WriteByte('=')
	}
	switch a.ValueType {
	case SingleQuoted:
		b.WriteString("'" + a.ValueString() + "'")
	case ExpressionValue:
		b.WriteString("{" + a.ValueString() + "}")
	default:
		b.WriteString(`"` + a.ValueString() + `"`)
	}
}
