// Package navigation edits bounded-depth menu trees.
//
// A tree is an array of items, each {"label", "href", "order"?, "icon"?,
// "children"?}. Any insert, removal or move at the root level rewrites every
// root item's order to its 1-based position. Edits rewrite only the keys
// they target; every other member of every node is written back as read.
package navigation

import (
	"github.com/tendant/content-editor/pkg/contentedit"
)

// Item keys.
const (
	KeyLabel    = "label"
	KeyHref     = "href"
	KeyOrder    = "order"
	KeyIcon     = "icon"
	KeyChildren = "children"
)

// Item is one node of a navigation tree. It keeps the node object as read
// and its decoded children. Each item owns its Children slice; edits copy
// every level they pass through.
type Item struct {
	node     contentedit.Value
	Children []Item
}

// NewItem returns an item with the given label and href.
func NewItem(label, href string) Item {
	return Item{node: contentedit.Object(
		contentedit.Member{Key: KeyLabel, Value: contentedit.String(label)},
		contentedit.Member{Key: KeyHref, Value: contentedit.String(href)},
	)}
}

// FromValue decodes a navigation tree. Null decodes to an empty tree.
func FromValue(v contentedit.Value) ([]Item, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, contentedit.ErrNotArray
	}
	items := make([]Item, 0, v.Len())
	for _, el := range v.Items() {
		it, err := itemFromValue(el)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func itemFromValue(v contentedit.Value) (Item, error) {
	if !v.IsObject() {
		return Item{}, contentedit.ErrNotObject
	}
	it := Item{node: v}
	if raw, ok := v.Get(KeyChildren); ok {
		children, err := FromValue(raw)
		if err != nil {
			return Item{}, err
		}
		if len(children) > 0 {
			it.Children = children
		}
	}
	return it, nil
}

// ToValue encodes a tree.
func ToValue(items []Item) contentedit.Value {
	out := make([]contentedit.Value, len(items))
	for i, it := range items {
		out[i] = it.Value()
	}
	return contentedit.Array(out...)
}

// Value returns the node object. A node whose children were all removed
// loses its children key; an empty or null children member that was read
// that way stays.
func (it Item) Value() contentedit.Value {
	if len(it.Children) > 0 {
		return it.with(KeyChildren, ToValue(it.Children)).node
	}
	if raw, ok := it.node.Get(KeyChildren); ok && raw.Len() > 0 {
		return it.without(KeyChildren).node
	}
	return it.node
}

// Label returns the label as display text.
func (it Item) Label() string { return it.text(KeyLabel) }

// Href returns the href as display text.
func (it Item) Href() string { return it.text(KeyHref) }

// Icon returns the icon as display text, or "" when absent or null.
func (it Item) Icon() string { return it.text(KeyIcon) }

// Order returns the order member as read, whatever its type.
func (it Item) Order() (contentedit.Value, bool) { return it.node.Get(KeyOrder) }

// Get returns any member of the node.
func (it Item) Get(key string) (contentedit.Value, bool) { return it.node.Get(key) }

func (it Item) text(key string) string {
	v, _ := it.node.Get(key)
	return v.Text()
}

// with returns a copy of the item with key bound to v.
func (it Item) with(key string, v contentedit.Value) Item {
	if node, err := it.node.Set(key, v); err == nil {
		it.node = node
	}
	return it
}

func (it Item) without(key string) Item {
	if node, err := it.node.Delete(key); err == nil {
		it.node = node
	}
	return it
}

// clone copies the item with its own Children slice header. Deeper levels
// are shared until an edit passes through them.
func (it Item) clone() Item {
	c := it
	if it.Children != nil {
		c.Children = append([]Item(nil), it.Children...)
	}
	return c
}
