package resource

import (
	"fmt"

	"bennypowers.dev/abbrex/internal/collections"
	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/node"
	"bennypowers.dev/abbrex/internal/parser/markup"
	"bennypowers.dev/abbrex/internal/parser/stylesheet"
)

// ResolveMarkup replaces element names that match markup snippets with the
// snippet's tree. The element's own attributes, text and children move onto
// the deepest last node of the snippet. A snippet already being resolved is
// left as written, so img: img[src alt]/ does not loop.
func ResolveMarkup(tree *node.Tree, r Resolver, opts markup.ParseOptions) error {
	return resolveChildren(tree, tree.Root(), r, opts, collections.NewSet[string]())
}

func resolveChildren(tree *node.Tree, parent node.ID, r Resolver, opts markup.ParseOptions, stack collections.Set[string]) error {
	for _, id := range tree.Children(parent) {
		if err := resolveNode(tree, id, r, opts, stack); err != nil {
			return err
		}
		if err := resolveChildren(tree, id, r, opts, stack); err != nil {
			return err
		}
	}
	return nil
}

func resolveNode(tree *node.Tree, id node.ID, r Resolver, opts markup.ParseOptions, stack collections.Set[string]) error {
	name := tree.Node(id).Name
	if name == "" {
		return nil
	}
	entry, ok := r.Lookup(name, Markup)
	if !ok || stack.Has(entry.Value) {
		return nil
	}

	snippet, err := markup.Parse(entry.Value, opts)
	if err != nil {
		return fmt.Errorf("invalid snippet %q: %w", name, err)
	}
	stack.Add(entry.Value)
	err = resolveChildren(snippet, snippet.Root(), r, opts, stack)
	stack.Remove(entry.Value)
	if err != nil {
		return err
	}

	grafted := tree.Graft(id, snippet)
	if len(grafted) == 0 {
		return nil
	}
	deepest := tree.DeepestLast(grafted[len(grafted)-1])
	merge(tree.Node(deepest), tree.Node(id))
	tree.InsertBefore(deepest, id)
	tree.Remove(deepest)

	log.Debug("Resolved snippet %s", name)
	return nil
}

// merge moves the snippet node's content into the abbreviation node, keeping
// the abbreviation's attributes last so they win
func merge(from, to *node.Node) {
	to.Name = from.Name
	if from.SelfClosing {
		to.SelfClosing = true
	}
	if from.Value != "" && to.Value == "" {
		to.Value = from.Value
	}
	if from.Repeat != nil && to.Repeat == nil {
		r := *from.Repeat
		to.Repeat = &r
	}

	own := to.Attributes
	to.Attributes = nil
	for _, a := range from.Attributes {
		to.SetAttribute(a.Clone())
	}
	for _, a := range own {
		to.SetAttribute(a)
	}
}

// ResolveStylesheet expands property names through stylesheet snippets. A
// snippet with a default value, like pos: position:relative, supplies that
// value when the abbreviation has none. A nameless property holding a color
// becomes color.
func ResolveStylesheet(props []stylesheet.Property, r Resolver) ([]stylesheet.Property, error) {
	for i := range props {
		p := &props[i]
		if p.Name == "" {
			if isColorValue(p) {
				p.Name = "color"
			}
			continue
		}

		entry, ok := r.Lookup(p.Name, Stylesheet)
		if !ok {
			continue
		}
		name, value := entry.Property()
		p.Name = name
		if value == "" || len(p.Value) > 0 {
			continue
		}
		parsed, err := stylesheet.Parse(value, stylesheet.ParseOptions{Value: true})
		if err != nil {
			return nil, fmt.Errorf("invalid snippet %q: %w", entry.Name, err)
		}
		for _, v := range parsed {
			p.Value = append(p.Value, v.Value...)
		}
	}
	return props, nil
}

func isColorValue(p *stylesheet.Property) bool {
	if len(p.Value) != 1 || len(p.Value[0].Value) != 1 {
		return false
	}
	_, ok := p.Value[0].Value[0].(*stylesheet.ColorValue)
	return ok
}
