package navigation

import (
	"github.com/tendant/content-editor/pkg/contentedit"
)

// Ops understood by Apply. Every op except add_root addresses a node with
// Action.Path, one index per level starting at the root array.
const (
	OpAddRoot  contentedit.Op = "add_root"
	OpRemove   contentedit.Op = "remove"
	OpMove     contentedit.Op = "move"
	OpAddChild contentedit.Op = "add_child"
	OpSetLabel contentedit.Op = "set_label"
	OpSetHref  contentedit.Op = "set_href"
	OpSetIcon  contentedit.Op = "set_icon"
)

// Defaults for new nodes.
const (
	NewRootLabel  = "New Item"
	NewChildLabel = "New Sub-item"
	NewHref       = "/"
)

// DefaultMaxDepth allows root items plus one level of children.
const DefaultMaxDepth = 2

// Options bounds the tree shape.
type Options struct {
	// MaxDepth is the number of levels, counting the root array as one.
	MaxDepth      int  `json:"max_depth"`
	AllowChildren bool `json:"allow_children"`
}

// DefaultOptions returns the default tree bounds.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth, AllowChildren: true}
}

// CanAddChild reports whether a node at depth (root items are depth 0) may
// receive children.
func (o Options) CanAddChild(depth int) bool {
	return o.AllowChildren && depth < o.MaxDepth-1
}

// Apply performs a on the tree v and returns the encoded result.
func Apply(v contentedit.Value, a contentedit.Action, opts Options) (contentedit.Result, error) {
	items, err := FromValue(v)
	if err != nil {
		return contentedit.Unchanged(v), contentedit.NewEditError(a, err)
	}
	out, change, changed, err := ApplyItems(items, a, opts)
	if err != nil {
		return contentedit.Unchanged(v), contentedit.NewEditError(a, err)
	}
	if !changed {
		return contentedit.Unchanged(v), nil
	}
	return contentedit.Result{Value: ToValue(out), Changed: true, Change: change}, nil
}

// ApplyItems performs a on a decoded tree. items is never modified; the
// returned tree shares untouched subtrees with it. changed is false for
// no-ops such as moving the first item up.
func ApplyItems(items []Item, a contentedit.Action, opts Options) (out []Item, change contentedit.Change, changed bool, err error) {
	if a.Op == OpAddRoot {
		out = append(append([]Item(nil), items...), NewItem(NewRootLabel, NewHref))
		renumber(out, true)
		return out, contentedit.Change{Kind: contentedit.ChangeInsert, Index: len(items)}, true, nil
	}

	if len(a.Path) == 0 {
		if isPathOp(a.Op) {
			return items, change, false, contentedit.ErrInvalidPointer
		}
		return items, change, false, contentedit.ErrUnknownOp
	}
	parent, idx := a.Path[:len(a.Path)-1], a.Path[len(a.Path)-1]
	root := len(parent) == 0

	switch a.Op {
	case OpRemove:
		out, err = updateLevel(items, parent, func(level []Item) ([]Item, error) {
			if idx < 0 || idx >= len(level) {
				return nil, contentedit.ErrIndexOutOfRange
			}
			next := append(append([]Item(nil), level[:idx]...), level[idx+1:]...)
			renumber(next, root)
			return next, nil
		})
		change = contentedit.Change{Kind: contentedit.ChangeRemove, Parent: copyPath(parent), Index: idx}

	case OpMove:
		level, ok := levelAt(items, parent)
		if !ok {
			return items, change, false, nil
		}
		target, ok := a.MoveTarget(idx, len(level))
		if !ok {
			return items, change, false, nil
		}
		out, err = updateLevel(items, parent, func(level []Item) ([]Item, error) {
			next := append([]Item(nil), level...)
			next[idx], next[target] = next[target], next[idx]
			renumber(next, root)
			return next, nil
		})
		change = contentedit.Change{Kind: contentedit.ChangeSwap, Parent: copyPath(parent), Index: idx, With: target}

	case OpAddChild:
		if !opts.AllowChildren {
			return items, change, false, contentedit.ErrChildrenDisabled
		}
		if !opts.CanAddChild(len(parent)) {
			return items, change, false, contentedit.ErrMaxDepth
		}
		at := 0
		out, err = updateNode(items, a.Path, func(it Item) (Item, error) {
			at = len(it.Children)
			it.Children = append(it.Children, NewItem(NewChildLabel, NewHref))
			return it, nil
		})
		change = contentedit.Change{Kind: contentedit.ChangeInsert, Parent: copyPath(a.Path), Index: at}

	case OpSetLabel, OpSetHref, OpSetIcon:
		out, err = updateNode(items, a.Path, func(it Item) (Item, error) {
			switch {
			case a.Op == OpSetLabel:
				return it.with(KeyLabel, contentedit.String(a.Text)), nil
			case a.Op == OpSetHref:
				return it.with(KeyHref, contentedit.String(a.Text)), nil
			case a.Text == "":
				return it.without(KeyIcon), nil
			default:
				return it.with(KeyIcon, contentedit.String(a.Text)), nil
			}
		})

	default:
		return items, change, false, contentedit.ErrUnknownOp
	}

	if err != nil {
		return items, contentedit.Change{}, false, err
	}
	if ToValue(out).Equal(ToValue(items)) {
		return items, contentedit.Change{}, false, nil
	}
	return out, change, true, nil
}

func isPathOp(op contentedit.Op) bool {
	switch op {
	case OpRemove, OpMove, OpAddChild, OpSetLabel, OpSetHref, OpSetIcon:
		return true
	}
	return false
}

// updateLevel rebuilds the sibling list owned by the node at parent (the root
// list when parent is empty) and every level above it.
func updateLevel(items []Item, parent []int, fn func([]Item) ([]Item, error)) ([]Item, error) {
	if len(parent) == 0 {
		return fn(items)
	}
	i := parent[0]
	if i < 0 || i >= len(items) {
		return nil, contentedit.ErrIndexOutOfRange
	}
	children, err := updateLevel(items[i].Children, parent[1:], fn)
	if err != nil {
		return nil, err
	}
	out := append([]Item(nil), items...)
	node := out[i]
	if len(children) == 0 {
		children = nil
	}
	node.Children = children
	out[i] = node
	return out, nil
}

// updateNode rebuilds the node at path and every level above it.
func updateNode(items []Item, path []int, fn func(Item) (Item, error)) ([]Item, error) {
	parent, idx := path[:len(path)-1], path[len(path)-1]
	return updateLevel(items, parent, func(level []Item) ([]Item, error) {
		if idx < 0 || idx >= len(level) {
			return nil, contentedit.ErrIndexOutOfRange
		}
		node, err := fn(level[idx].clone())
		if err != nil {
			return nil, err
		}
		out := append([]Item(nil), level...)
		out[idx] = node
		return out, nil
	})
}

// levelAt returns the sibling list owned by the node at parent.
func levelAt(items []Item, parent []int) ([]Item, bool) {
	level := items
	for _, i := range parent {
		if i < 0 || i >= len(level) {
			return nil, false
		}
		level = level[i].Children
	}
	return level, true
}

// renumber rewrites order as the 1-based position on one level. Root items
// always get an order; deeper items only when they already carry one.
func renumber(level []Item, root bool) {
	for i := range level {
		if _, has := level[i].Order(); root || has {
			level[i] = level[i].with(KeyOrder, contentedit.Number(float64(i+1)))
		}
	}
}

func copyPath(p []int) []int {
	if len(p) == 0 {
		return nil
	}
	return append([]int(nil), p...)
}
