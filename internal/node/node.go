package node

// ID addresses a node in its Tree
type ID int

// None is the ID of a missing node
const None ID = -1

// Repeat is the multiplication metadata of a node
type Repeat struct {
	// Count is the number of copies; ignored while Implicit is set
	Count int
	// Implicit marks a bare * whose count comes from pasted lines
	Implicit bool
	// Index is the 1-based copy number assigned during rollout, 0 before
	Index int
}

// Node is an element, text or grouping node of an abbreviation
type Node struct {
	Name        string
	Value       string
	Attributes  []Attribute
	Repeat      *Repeat
	SelfClosing bool

	// Start and End locate the node in the abbreviation source
	Start int
	End   int

	// Depth is derived by Compact; the root has depth 0
	Depth int

	parent   ID
	prev     ID
	next     ID
	children []ID
}

// IsGroup reports whether n only scopes operators and carries no content
func (n *Node) IsGroup() bool {
	return n.Name == "" && n.Value == "" && len(n.Attributes) == 0 && !n.SelfClosing
}

// Clone copies n's content without its links
func (n *Node) Clone() Node {
	c := Node{
		Name:        n.Name,
		Value:       n.Value,
		SelfClosing: n.SelfClosing,
		Start:       n.Start,
		End:         n.End,
		Depth:       n.Depth,
		parent:      None,
		prev:        None,
		next:        None,
	}
	if len(n.Attributes) > 0 {
		c.Attributes = make([]Attribute, len(n.Attributes))
		for i, a := range n.Attributes {
			c.Attributes[i] = a.Clone()
		}
	}
	if n.Repeat != nil {
		r := *n.Repeat
		c.Repeat = &r
	}
	return c
}
