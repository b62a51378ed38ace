package resource

import (
	"fmt"
	"strings"

	"bennypowers.dev/abbrex/internal/node"
	"bennypowers.dev/abbrex/internal/parser/markup"
)

// Check reports markup snippets that reach themselves through other
// snippets. A snippet naming its own element, like img: img[src alt]/,
// is not a loop.
func (r *Registry) Check() error {
	graph := make(map[string][]string)
	for _, name := range r.Names(Markup) {
		e, _ := r.Lookup(name, Markup)
		tree, err := markup.Parse(e.Value, markup.ParseOptions{})
		if err != nil {
			return fmt.Errorf("invalid snippet %q: %w", name, err)
		}
		tree.Walk(tree.Root(), func(id node.ID, _ int) bool {
			ref := tree.Node(id).Name
			if _, ok := r.Lookup(ref, Markup); ok && ref != "" && ref != name {
				graph[name] = append(graph[name], ref)
			}
			return true
		})
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int)
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %s -> %s", ErrCircularExpando, strings.Join(path, " -> "), name)
		case done:
			return nil
		}
		state[name] = visiting
		path = append(path, name)
		for _, ref := range graph[name] {
			if err := visit(ref); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[name] = done
		return nil
	}

	for _, name := range r.Names(Markup) {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
