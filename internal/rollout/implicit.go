package rollout

import (
	"slices"
	"strings"

	"bennypowers.dev/abbrex/internal/node"
)

// implicitChildren names the element an unnamed child of a parent becomes
var implicitChildren = map[string]string{
	"p":        "span",
	"ul":       "li",
	"ol":       "li",
	"table":    "tr",
	"tr":       "td",
	"tbody":    "tr",
	"thead":    "tr",
	"tfoot":    "tr",
	"colgroup": "col",
	"select":   "option",
	"optgroup": "option",
	"audio":    "source",
	"video":    "source",
	"object":   "param",
	"map":      "area",
}

// implicitNames names elements written without a tag, such as .item in
// ul>.item, after their closest named ancestor. Text nodes keep no name.
func (r *roller) implicitNames(parent node.ID, parentName string) {
	for _, id := range r.tree.Children(parent) {
		n := r.tree.Node(id)
		if n.Name == "" && len(n.Attributes) > 0 {
			n.Name = r.implicitName(parentName)
		}
		name := parentName
		if n.Name != "" {
			name = n.Name
		}
		r.implicitNames(id, name)
	}
}

func (r *roller) implicitName(parent string) string {
	parent = strings.ToLower(parent)
	if name, ok := implicitChildren[parent]; ok {
		return name
	}
	if slices.Contains(r.ctx.InlineElements, parent) {
		return "span"
	}
	return "div"
}
