// Package rollout expands a parsed abbreviation tree into a concrete tree:
// it clones repeated nodes, substitutes counters, pastes wrapped text,
// renumbers tab-stop fields and names elements written without a tag.
package rollout

import (
	"strings"

	"bennypowers.dev/abbrex/internal/field"
	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/node"
)

type roller struct {
	tree *node.Tree
	ctx  Context

	lines     []string
	paste     string
	hasPaste  bool
	clones    int
	inserted  bool
	designate int

	units    map[node.ID]int
	unitBase map[int]int
	nextUnit int
	maxField int
}

// Rollout expands tree in place and returns its concrete form. The tree
// must not be reused afterwards.
func Rollout(tree *node.Tree, paste *PasteSpec, ctx Context) *ConcreteTree {
	r := &roller{
		tree:      tree,
		ctx:       ctx.withDefaults(),
		lines:     paste.Lines(),
		designate: -1,
		units:     make(map[node.ID]int),
		unitBase:  make(map[int]int),
	}
	if paste != nil {
		r.paste = strings.TrimSpace(paste.Text)
		r.hasPaste = r.paste != ""
	}

	r.designateImplicit()
	r.expand(tree.Root(), nil)
	r.pasteRemaining()
	r.renumber(tree.Root(), 0)
	r.finalize(tree.Root())
	r.implicitNames(tree.Root(), "")

	return newConcreteTree(tree.Compact())
}

// designateImplicit picks the last implicitly repeated node as the one that
// multiplies by the pasted lines
func (r *roller) designateImplicit() {
	var implicit []node.ID
	r.tree.Walk(r.tree.Root(), func(id node.ID, _ int) bool {
		if rep := r.tree.Node(id).Repeat; rep != nil && rep.Implicit {
			implicit = append(implicit, id)
		}
		return true
	})
	if len(implicit) == 0 {
		return
	}
	if len(implicit) > 1 {
		log.Warn("Abbreviation has %d implicit repeats; only the last one takes the pasted lines", len(implicit))
	}
	r.designate = r.tree.Node(implicit[len(implicit)-1]).Start
}

// isDesignated reports whether n is a copy of the designated implicit
// repeat. Copies made by repeated ancestors share its source offset; all of
// them repeat once per line but only the first receives the lines.
func (r *roller) isDesignated(n *node.Node) bool {
	return n.Repeat != nil && n.Repeat.Implicit && n.Start == r.designate
}

// expand rolls out the children of parent. sc is the innermost repeat
// scope, nil outside any repeat.
func (r *roller) expand(parent node.ID, sc *scope) {
	for _, id := range r.tree.Children(parent) {
		n := r.tree.Node(id)
		if n.Repeat == nil {
			if sc != nil {
				r.numberNode(id, *sc)
			}
			r.expand(id, sc)
			continue
		}
		r.repeat(id, sc)
	}
}

// repeat replaces id with its clones. outer is the enclosing repeat scope.
func (r *roller) repeat(id node.ID, outer *scope) {
	n := r.tree.Node(id)
	designated := r.isDesignated(n)
	takesLines := designated && !r.inserted

	count := n.Repeat.Count
	if n.Repeat.Implicit {
		count = 1
		if designated {
			count = max(1, len(r.lines))
		}
	}
	count = max(1, count)

	for i := 1; i <= count; i++ {
		clone := r.tree.Clone(id)
		r.tree.InsertBefore(id, clone)

		c := r.tree.Node(clone)
		c.Repeat.Count = count
		c.Repeat.Index = i

		sc := scope{index: i, count: count, parent: outer}
		r.numberNode(clone, sc)
		r.expand(clone, &sc)

		if takesLines {
			line := ""
			if i-1 < len(r.lines) {
				line = r.lines[i-1]
			}
			r.insert(clone, r.escape(line))
		}

		unit := r.nextUnit
		r.nextUnit++
		r.units[clone] = unit

		if r.tree.Node(clone).IsGroup() {
			r.spliceGroup(clone, unit)
		}

		r.clones++
		if r.ctx.MaxRepeat > 0 && r.clones >= r.ctx.MaxRepeat {
			log.Debug("Repeat limit of %d reached", r.ctx.MaxRepeat)
			break
		}
	}

	if takesLines {
		r.inserted = true
	}
	r.tree.Remove(id)
}

// spliceGroup hands the repeat of a group clone down to its children and
// replaces the group with them
func (r *roller) spliceGroup(group node.ID, unit int) {
	rep := *r.tree.Node(group).Repeat
	rep.Implicit = false
	for _, child := range r.tree.Children(group) {
		c := r.tree.Node(child)
		if c.Repeat == nil {
			inherited := rep
			c.Repeat = &inherited
		}
		if _, ok := r.units[child]; !ok {
			r.units[child] = unit
		}
	}
	r.tree.Splice(group)
}

// numberNode substitutes counters in the name, text and attributes of id
func (r *roller) numberNode(id node.ID, sc scope) {
	n := r.tree.Node(id)
	n.Name = r.number(n.Name, sc)
	n.Value = r.number(n.Value, sc)
	for i := range n.Attributes {
		a := &n.Attributes[i]
		a.Name = r.number(a.Name, sc)
		if a.HasValue() {
			a.SetValue(r.number(a.ValueString(), sc))
		}
	}
}

// insert puts text into every output placeholder under id, or appends it
// to the deepest last node when there is none
func (r *roller) insert(id node.ID, text string) {
	if r.replacePlaceholders(id, text) {
		return
	}
	if text == "" {
		return
	}
	deepest := r.tree.Node(r.tree.DeepestLast(id))
	deepest.Value += text
}

func (r *roller) replacePlaceholders(id node.ID, text string) bool {
	found := r.replaceIn(r.tree.Node(id), text)
	r.tree.Walk(id, func(child node.ID, _ int) bool {
		if r.replaceIn(r.tree.Node(child), text) {
			found = true
		}
		return true
	})
	return found
}

func (r *roller) replaceIn(n *node.Node, text string) bool {
	placeholder := r.ctx.OutputPlaceholder
	found := false
	if strings.Contains(n.Value, placeholder) {
		n.Value = strings.ReplaceAll(n.Value, placeholder, text)
		found = true
	}
	for i := range n.Attributes {
		a := &n.Attributes[i]
		if a.HasValue() && strings.Contains(a.ValueString(), placeholder) {
			a.SetValue(strings.ReplaceAll(a.ValueString(), placeholder, text))
			found = true
		}
	}
	return found
}

// pasteRemaining fills placeholders outside the designated repeat. Without
// an implicit repeat the whole pasted text wraps the tree.
func (r *roller) pasteRemaining() {
	root := r.tree.Root()
	if r.inserted {
		r.replacePlaceholders(root, "")
		return
	}
	text := r.escape(r.paste)
	if r.replacePlaceholders(root, text) || !r.hasPaste {
		return
	}
	if r.tree.ChildCount(root) == 0 {
		r.tree.AppendChild(root, r.tree.Add(node.Node{Value: text}))
		return
	}
	r.insert(root, text)
}

// renumber shifts tab-stop fields so that each clone gets its own set.
// The final caret ${0} keeps index 0.
func (r *roller) renumber(parent node.ID, base int) {
	for _, id := range r.tree.Children(parent) {
		b := base
		if unit, ok := r.units[id]; ok {
			if ub, seen := r.unitBase[unit]; seen {
				b = ub
			} else {
				b = r.maxField
				r.unitBase[unit] = b
			}
		}

		n := r.tree.Node(id)
		n.Value = r.shiftFields(n.Value, b)
		for i := range n.Attributes {
			a := &n.Attributes[i]
			if a.HasValue() {
				a.SetValue(r.shiftFields(a.ValueString(), b))
			}
		}
		r.renumber(id, b)
	}
}

func (r *roller) shiftFields(s string, base int) string {
	if !strings.Contains(s, "$") {
		return s
	}
	parsed, err := field.Parse(s)
	if err != nil || len(parsed.Fields) == 0 {
		return s
	}
	return parsed.Mark(func(index int, placeholder string) string {
		if index != 0 {
			index += base
		}
		r.maxField = max(r.maxField, index)
		return field.CreateToken(index, r.shiftFields(placeholder, base))
	})
}

// finalize unescapes glyphs and elides the groups left in the tree
func (r *roller) finalize(parent node.ID) {
	for _, id := range r.tree.Children(parent) {
		n := r.tree.Node(id)
		n.Name = r.unescape(n.Name)
		n.Value = r.unescape(n.Value)
		for i := range n.Attributes {
			a := &n.Attributes[i]
			a.Name = r.unescape(a.Name)
			if a.HasValue() {
				a.SetValue(r.unescape(a.ValueString()))
			}
		}
		r.finalize(id)
		if r.tree.Node(id).IsGroup() {
			r.tree.Splice(id)
		}
	}
}
