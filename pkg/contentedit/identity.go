package contentedit

import (
	"github.com/google/uuid"
)

// ItemKeys assigns a stable identity to each item of one array level.
// Identities are created when a value is loaded and follow their item through
// inserts, removals and swaps, so view state keyed by them (expanded cards,
// focus) stays with the item after a reorder. They are never written into
// content data.
type ItemKeys struct {
	keys []uuid.UUID
}

// NewItemKeys assigns fresh identities to n items.
func NewItemKeys(n int) *ItemKeys {
	k := &ItemKeys{}
	k.Sync(n)
	return k
}

// Len returns the number of tracked items.
func (k *ItemKeys) Len() int { return len(k.keys) }

// Key returns the identity of item i, or uuid.Nil when out of range.
func (k *ItemKeys) Key(i int) uuid.UUID {
	if i < 0 || i >= len(k.keys) {
		return uuid.Nil
	}
	return k.keys[i]
}

// IndexOf returns the current position of id, or -1.
func (k *ItemKeys) IndexOf(id uuid.UUID) int {
	for i, key := range k.keys {
		if key == id {
			return i
		}
	}
	return -1
}

// Apply moves identities the way c moved items.
func (k *ItemKeys) Apply(c Change) {
	switch c.Kind {
	case ChangeInsert:
		if c.Index < 0 || c.Index > len(k.keys) {
			return
		}
		k.keys = append(k.keys, uuid.Nil)
		copy(k.keys[c.Index+1:], k.keys[c.Index:])
		k.keys[c.Index] = uuid.New()
	case ChangeRemove:
		if c.Index < 0 || c.Index >= len(k.keys) {
			return
		}
		k.keys = append(k.keys[:c.Index], k.keys[c.Index+1:]...)
	case ChangeSwap:
		if c.Index < 0 || c.Index >= len(k.keys) || c.With < 0 || c.With >= len(k.keys) {
			return
		}
		k.keys[c.Index], k.keys[c.With] = k.keys[c.With], k.keys[c.Index]
	case ChangeReset:
		n := len(k.keys)
		k.keys = nil
		k.Sync(n)
	}
}

// Sync trims or extends the identities to n items. Existing identities keep
// their positions.
func (k *ItemKeys) Sync(n int) {
	if n < len(k.keys) {
		k.keys = k.keys[:n]
		return
	}
	for len(k.keys) < n {
		k.keys = append(k.keys, uuid.New())
	}
}

// Expansion is the expand/collapse view state of a set of items. It is keyed
// by item identity, never by position, and is not part of the content value.
type Expansion map[uuid.UUID]bool

// Toggle flips the state of id and returns the new state.
func (e Expansion) Toggle(id uuid.UUID) bool {
	e[id] = !e[id]
	if !e[id] {
		delete(e, id)
	}
	return e[id]
}

// IsExpanded reports whether id is expanded.
func (e Expansion) IsExpanded(id uuid.UUID) bool {
	return e[id]
}

// Retain forgets identities that are no longer tracked by keep.
func (e Expansion) Retain(keep func(uuid.UUID) bool) {
	for id := range e {
		if !keep(id) {
			delete(e, id)
		}
	}
}
