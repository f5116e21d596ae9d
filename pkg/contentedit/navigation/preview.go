package navigation

import (
	"fmt"
	"io"
	"strings"

	"github.com/tendant/content-editor/pkg/contentedit"
)

// PreviewNode is the read-only form of a navigation item.
type PreviewNode struct {
	Label    string             `json:"label"`
	Href     string             `json:"href"`
	Order    *contentedit.Value `json:"order,omitempty"`
	Icon     string             `json:"icon,omitempty"`
	Depth    int                `json:"depth"`
	Children []PreviewNode      `json:"children,omitempty"`
}

// Preview decodes v into a read-only tree with the same structure and values
// the editor shows.
func Preview(v contentedit.Value) ([]PreviewNode, error) {
	items, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return previewLevel(items, 0), nil
}

func previewLevel(items []Item, depth int) []PreviewNode {
	if len(items) == 0 {
		return nil
	}
	nodes := make([]PreviewNode, len(items))
	for i, it := range items {
		n := PreviewNode{
			Label:    it.Label(),
			Href:     it.Href(),
			Icon:     it.Icon(),
			Depth:    depth,
			Children: previewLevel(it.Children, depth+1),
		}
		if order, ok := it.Order(); ok {
			n.Order = &order
		}
		nodes[i] = n
	}
	return nodes
}

// RenderPreview writes an indented outline of nodes, one item per line:
//
//   - Home (/)
//   - [star] Docs (/docs)
func RenderPreview(w io.Writer, nodes []PreviewNode) error {
	for _, n := range nodes {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", n.Depth))
		b.WriteString("- ")
		if n.Icon != "" {
			fmt.Fprintf(&b, "[%s] ", n.Icon)
		}
		fmt.Fprintf(&b, "%s (%s)\n", n.Label, n.Href)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := RenderPreview(w, n.Children); err != nil {
			return err
		}
	}
	return nil
}
