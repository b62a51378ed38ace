package node_test

import (
	"testing"

	"bennypowers.dev/abbrex/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func element(t *node.Tree, parent node.ID, name string) node.ID {
	id := t.Add(node.Node{Name: name})
	t.AppendChild(parent, id)
	return id
}

func TestTreeLinks(t *testing.T) {
	tree := node.New()
	root := tree.Root()
	a := element(tree, root, "a")
	b := element(tree, root, "b")
	c := element(tree, root, "c")

	assert.Equal(t, []node.ID{a, b, c}, tree.Children(root))
	assert.Equal(t, node.None, tree.Prev(a))
	assert.Equal(t, b, tree.Next(a))
	assert.Equal(t, a, tree.Prev(b))
	assert.Equal(t, node.None, tree.Next(c))
	assert.Equal(t, root, tree.Parent(b))

	tree.Remove(b)
	assert.Equal(t, c, tree.Next(a))
	assert.Equal(t, node.None, tree.Parent(b))

	tree.InsertBefore(a, b)
	assert.Equal(t, []node.ID{b, a, c}, tree.Children(root))
	assert.Equal(t, "<b></b><a></a><c></c>", tree.String())
}

func TestTreeClone(t *testing.T) {
	tree := node.New()
	ul := element(tree, tree.Root(), "ul")
	li := element(tree, ul, "li")
	tree.Node(li).AddClass("item")

	clone := tree.Clone(ul)
	tree.AppendChild(tree.Root(), clone)

	cloneLi := tree.FirstChild(clone)
	require.NotEqual(t, li, cloneLi)
	tree.Node(cloneLi).Attributes[0].SetValue("changed")

	assert.Equal(t, "item", tree.Node(li).AttrValue("class"), "clones share no attribute memory")
	assert.Equal(t, `<ul><li class="item"></li></ul><ul><li class="changed"></li></ul>`, tree.String())
}

func TestAttributeMerge(t *testing.T) {
	n := &node.Node{Name: "div"}
	n.AddClass("a")
	n.AddClass("b")
	n.AddClass("a")
	n.SetAttribute(node.NewAttribute("id", "x"))
	n.SetAttribute(node.NewAttribute("id", "y"))
	n.SetAttribute(node.NewAttribute("class", "c a"))

	require.Len(t, n.Attributes, 2)
	assert.Equal(t, "a b c", n.AttrValue("class"))
	assert.Equal(t, "y", n.AttrValue("id"))
	assert.Equal(t, "", n.AttrValue("title"))
}

func TestOptimize(t *testing.T) {
	build := func() *node.Tree {
		tree := node.New()
		outer := tree.Add(node.Node{})
		tree.AppendChild(tree.Root(), outer)
		inner := tree.Add(node.Node{})
		tree.AppendChild(outer, inner)
		element(tree, inner, "a")
		element(tree, inner, "b")
		repeated := tree.Add(node.Node{Repeat: &node.Repeat{Count: 2}})
		tree.AppendChild(outer, repeated)
		element(tree, repeated, "c")
		return tree
	}

	tree := build()
	tree.Optimize()
	assert.Equal(t, "<a></a><b></b>(<c></c>)*2", tree.String())

	once := tree.Compact()
	tree.Optimize()
	assert.True(t, once.Equal(tree.Compact()), "optimizing twice is a no-op")
	assert.False(t, once.Equal(build()))
}

func TestCompactRecomputesDepth(t *testing.T) {
	tree := node.New()
	div := element(tree, tree.Root(), "div")
	p := element(tree, div, "p")
	element(tree, p, "span")
	orphan := element(tree, div, "em")
	tree.Remove(orphan)

	compact := tree.Compact()
	assert.Equal(t, 3, compact.Len())

	depths := map[string]int{}
	compact.Walk(compact.Root(), func(id node.ID, level int) bool {
		n := compact.Node(id)
		depths[n.Name] = n.Depth
		assert.Equal(t, level+1, n.Depth)
		return true
	})
	assert.Equal(t, map[string]int{"div": 1, "p": 2, "span": 3}, depths)
}

func TestGraftAndDeepestLast(t *testing.T) {
	tree := node.New()
	ref := element(tree, tree.Root(), "ul+")

	snippet := node.New()
	ul := element(snippet, snippet.Root(), "ul")
	element(snippet, ul, "li")

	ids := tree.Graft(ref, snippet)
	tree.Remove(ref)

	require.Len(t, ids, 1)
	assert.Equal(t, "<ul><li></li></ul>", tree.String())
	assert.Equal(t, "li", tree.Node(tree.DeepestLast(tree.Root())).Name)
}

func TestSplice(t *testing.T) {
	tree := node.New()
	group := tree.Add(node.Node{})
	tree.AppendChild(tree.Root(), group)
	element(tree, group, "a")
	element(tree, group, "b")
	after := element(tree, tree.Root(), "c")

	tree.Splice(group)
	assert.Equal(t, "<a></a><b></b><c></c>", tree.String())
	assert.Equal(t, "b", tree.Node(tree.Prev(after)).Name)
}

func TestAttributeRendering(t *testing.T) {
	tree := node.New()
	id := element(tree, tree.Root(), "input")
	n := tree.Node(id)
	n.SetAttribute(node.Attribute{Name: "disabled", Boolean: true})
	n.SetAttribute(node.Attribute{Name: "title", Implied: true})
	v := "x"
	n.SetAttribute(node.Attribute{Name: "value", Value: &v, ValueType: node.SingleQuoted})
	n.SelfClosing = true

	assert.Equal(t, `<input disabled. !title value='x' /></input>`, tree.String())
}
