package navigation

import (
	"github.com/google/uuid"
	"github.com/tendant/content-editor/pkg/contentedit"
)

// nodeKeys mirrors a tree with one identity per node.
type nodeKeys struct {
	keys *contentedit.ItemKeys
	kids []*nodeKeys
}

func newNodeKeys(items []Item) *nodeKeys {
	n := &nodeKeys{keys: contentedit.NewItemKeys(len(items))}
	n.kids = make([]*nodeKeys, len(items))
	for i, it := range items {
		n.kids[i] = newNodeKeys(it.Children)
	}
	return n
}

// level returns the identities of the children of the node at parent.
func (n *nodeKeys) level(parent []int) *nodeKeys {
	cur := n
	for _, i := range parent {
		if i < 0 || i >= len(cur.kids) {
			return nil
		}
		cur = cur.kids[i]
	}
	return cur
}

func (n *nodeKeys) key(path []int) uuid.UUID {
	if len(path) == 0 {
		return uuid.Nil
	}
	lvl := n.level(path[:len(path)-1])
	if lvl == nil {
		return uuid.Nil
	}
	return lvl.keys.Key(path[len(path)-1])
}

func (n *nodeKeys) apply(c contentedit.Change) {
	lvl := n.level(c.Parent)
	if lvl == nil {
		return
	}
	lvl.keys.Apply(c)
	switch c.Kind {
	case contentedit.ChangeInsert:
		if c.Index >= 0 && c.Index <= len(lvl.kids) {
			lvl.kids = append(lvl.kids, nil)
			copy(lvl.kids[c.Index+1:], lvl.kids[c.Index:])
			lvl.kids[c.Index] = newNodeKeys(nil)
		}
	case contentedit.ChangeRemove:
		if c.Index >= 0 && c.Index < len(lvl.kids) {
			lvl.kids = append(lvl.kids[:c.Index], lvl.kids[c.Index+1:]...)
		}
	case contentedit.ChangeSwap:
		if c.Index >= 0 && c.Index < len(lvl.kids) && c.With >= 0 && c.With < len(lvl.kids) {
			lvl.kids[c.Index], lvl.kids[c.With] = lvl.kids[c.With], lvl.kids[c.Index]
		}
	}
}

func (n *nodeKeys) contains(id uuid.UUID) bool {
	if n.keys.IndexOf(id) >= 0 {
		return true
	}
	for _, k := range n.kids {
		if k.contains(id) {
			return true
		}
	}
	return false
}

// ChangeFunc receives every new tree value.
type ChangeFunc func(contentedit.Value)

// Editor holds a navigation tree with per-node expansion state. Expansion
// follows the node through moves, not its position.
type Editor struct {
	items    []Item
	opts     Options
	onChange ChangeFunc
	keys     *nodeKeys
	expanded contentedit.Expansion
}

// NewEditor decodes v and creates an editor for it.
func NewEditor(v contentedit.Value, onChange ChangeFunc, opts Options) (*Editor, error) {
	items, err := FromValue(v)
	if err != nil {
		return nil, err
	}
	return &Editor{
		items:    items,
		opts:     opts,
		onChange: onChange,
		keys:     newNodeKeys(items),
		expanded: contentedit.Expansion{},
	}, nil
}

// Items returns the current tree. Callers must not modify it.
func (e *Editor) Items() []Item { return e.items }

// Value returns the encoded tree.
func (e *Editor) Value() contentedit.Value { return ToValue(e.items) }

// Options returns the tree bounds.
func (e *Editor) Options() Options { return e.opts }

// Apply performs a and reports whether the tree changed.
func (e *Editor) Apply(a contentedit.Action) (bool, error) {
	out, change, changed, err := ApplyItems(e.items, a, e.opts)
	if err != nil {
		return false, contentedit.NewEditError(a, err)
	}
	if !changed {
		return false, nil
	}
	e.items = out
	e.keys.apply(change)
	e.expanded.Retain(e.keys.contains)
	if e.onChange != nil {
		e.onChange(ToValue(out))
	}
	return true, nil
}

// NodeKey returns the identity of the node at path.
func (e *Editor) NodeKey(path []int) uuid.UUID { return e.keys.key(path) }

// ToggleExpanded flips the node at path and returns its new state.
func (e *Editor) ToggleExpanded(path []int) bool {
	id := e.keys.key(path)
	if id == uuid.Nil {
		return false
	}
	return e.expanded.Toggle(id)
}

// IsExpanded reports whether the node at path is expanded.
func (e *Editor) IsExpanded(path []int) bool {
	return e.expanded.IsExpanded(e.keys.key(path))
}

// CanAddChild reports whether the node at path may receive a child.
func (e *Editor) CanAddChild(path []int) bool {
	return len(path) > 0 && e.opts.CanAddChild(len(path)-1)
}

// CanMove reports whether the node at path can move by delta.
func (e *Editor) CanMove(path []int, delta int) bool {
	if len(path) == 0 {
		return false
	}
	level, ok := levelAt(e.items, path[:len(path)-1])
	if !ok {
		return false
	}
	_, ok = contentedit.Action{Delta: delta}.MoveTarget(path[len(path)-1], len(level))
	return ok
}
