package contentedit_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/tendant/content-editor/pkg/contentedit"
)

func TestItemKeys_FollowItems(t *testing.T) {
	keys := contentedit.NewItemKeys(3)
	a, b, c := keys.Key(0), keys.Key(1), keys.Key(2)
	assert.NotEqual(t, a, b)

	keys.Apply(contentedit.Change{Kind: contentedit.ChangeSwap, Index: 0, With: 1})
	assert.Equal(t, []uuid.UUID{b, a, c}, []uuid.UUID{keys.Key(0), keys.Key(1), keys.Key(2)})

	keys.Apply(contentedit.Change{Kind: contentedit.ChangeRemove, Index: 1})
	assert.Equal(t, 2, keys.Len())
	assert.Equal(t, -1, keys.IndexOf(a))
	assert.Equal(t, 1, keys.IndexOf(c))

	keys.Apply(contentedit.Change{Kind: contentedit.ChangeInsert, Index: 2})
	assert.Equal(t, 3, keys.Len())
	assert.NotEqual(t, uuid.Nil, keys.Key(2))

	// Out-of-range changes are ignored.
	keys.Apply(contentedit.Change{Kind: contentedit.ChangeSwap, Index: 0, With: 9})
	assert.Equal(t, b, keys.Key(0))
	assert.Equal(t, uuid.Nil, keys.Key(9))
}

func TestItemKeys_SyncKeepsPrefix(t *testing.T) {
	keys := contentedit.NewItemKeys(2)
	first := keys.Key(0)
	keys.Sync(4)
	assert.Equal(t, 4, keys.Len())
	assert.Equal(t, first, keys.Key(0))
	keys.Sync(1)
	assert.Equal(t, 1, keys.Len())
	assert.Equal(t, first, keys.Key(0))
}

func TestExpansion(t *testing.T) {
	e := contentedit.Expansion{}
	id := uuid.New()
	assert.True(t, e.Toggle(id))
	assert.True(t, e.IsExpanded(id))
	assert.False(t, e.Toggle(id))
	assert.False(t, e.IsExpanded(id))

	e.Toggle(id)
	e.Retain(func(uuid.UUID) bool { return false })
	assert.Empty(t, e)
}
