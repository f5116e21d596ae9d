package navigation_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-editor/pkg/contentedit"
	"github.com/tendant/content-editor/pkg/contentedit/navigation"
)

func apply(t *testing.T, in string, a contentedit.Action, opts navigation.Options) contentedit.Result {
	t.Helper()
	res, err := navigation.Apply(contentedit.MustParse(in), a, opts)
	require.NoError(t, err)
	return res
}

func jsonOf(v contentedit.Value) string {
	return string(contentedit.Marshal(v))
}

// orders returns the root-level order values.
func orders(t *testing.T, v contentedit.Value) []int {
	t.Helper()
	items, err := navigation.FromValue(v)
	require.NoError(t, err)
	out := make([]int, len(items))
	for i, it := range items {
		order, ok := it.Order()
		require.True(t, ok, "root item %d has no order", i)
		out[i] = int(order.AsNumber())
	}
	return out
}

func TestRemoveLastChildDropsChildrenKey(t *testing.T) {
	res := apply(t, `[{"label":"A","href":"/a","children":[{"label":"X","href":"/x"}]}]`,
		contentedit.Action{Op: navigation.OpRemove, Path: []int{0, 0}}, navigation.DefaultOptions())

	require.True(t, res.Changed)
	assert.Equal(t, `[{"label":"A","href":"/a"}]`, jsonOf(res.Value))
	assert.Equal(t, contentedit.Change{Kind: contentedit.ChangeRemove, Parent: []int{0}, Index: 0}, res.Change)
}

func TestRootOrderStaysContiguous(t *testing.T) {
	in := `[{"label":"A","href":"/a","order":1},{"label":"B","href":"/b","order":2},{"label":"C","href":"/c","order":3}]`
	opts := navigation.DefaultOptions()

	res := apply(t, in, contentedit.Action{Op: navigation.OpRemove, Path: []int{0}}, opts)
	assert.Equal(t, []int{1, 2}, orders(t, res.Value))
	assert.Equal(t, `[{"label":"B","href":"/b","order":1},{"label":"C","href":"/c","order":2}]`, jsonOf(res.Value))

	res = apply(t, in, contentedit.Action{Op: navigation.OpMove, Path: []int{2}, Delta: -1}, opts)
	assert.Equal(t, []int{1, 2, 3}, orders(t, res.Value))
	items, err := navigation.FromValue(res.Value)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, []string{items[0].Label(), items[1].Label(), items[2].Label()})

	res = apply(t, in, contentedit.Action{Op: navigation.OpAddRoot}, opts)
	assert.Equal(t, []int{1, 2, 3, 4}, orders(t, res.Value))
	last := res.Value.Index(3)
	assert.Equal(t, `{"label":"New Item","href":"/","order":4}`, jsonOf(last))

	// Items missing an order get one after a root edit.
	res = apply(t, `[{"label":"A","href":"/a"},{"label":"B","href":"/b"}]`,
		contentedit.Action{Op: navigation.OpMove, Path: []int{0}, Delta: 1}, opts)
	assert.Equal(t, []int{1, 2}, orders(t, res.Value))
}

func TestMoveAtBoundaryIsNoop(t *testing.T) {
	in := `[{"label":"A","href":"/a","order":1},{"label":"B","href":"/b","order":2}]`
	opts := navigation.DefaultOptions()

	res := apply(t, in, contentedit.Action{Op: navigation.OpMove, Path: []int{0}, Delta: -1}, opts)
	assert.False(t, res.Changed)
	res = apply(t, in, contentedit.Action{Op: navigation.OpMove, Path: []int{1}, Delta: 1}, opts)
	assert.False(t, res.Changed)
}

func TestAddChild(t *testing.T) {
	in := `[{"label":"A","href":"/a","order":1}]`

	res := apply(t, in, contentedit.Action{Op: navigation.OpAddChild, Path: []int{0}}, navigation.DefaultOptions())
	assert.Equal(t, `[{"label":"A","href":"/a","order":1,"children":[{"label":"New Sub-item","href":"/"}]}]`, jsonOf(res.Value))
	assert.Equal(t, contentedit.Change{Kind: contentedit.ChangeInsert, Parent: []int{0}, Index: 0}, res.Change)

	// Depth 1 nodes cannot have children with the default depth of 2.
	_, err := navigation.Apply(res.Value, contentedit.Action{Op: navigation.OpAddChild, Path: []int{0, 0}}, navigation.DefaultOptions())
	assert.ErrorIs(t, err, contentedit.ErrMaxDepth)

	deeper := navigation.Options{MaxDepth: 3, AllowChildren: true}
	res, err = navigation.Apply(res.Value, contentedit.Action{Op: navigation.OpAddChild, Path: []int{0, 0}}, deeper)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	_, err = navigation.Apply(contentedit.MustParse(in), contentedit.Action{Op: navigation.OpAddChild, Path: []int{0}},
		navigation.Options{MaxDepth: 2})
	assert.ErrorIs(t, err, contentedit.ErrChildrenDisabled)
}

func TestChildOrderRenumberedOnlyWherePresent(t *testing.T) {
	in := `[{"label":"A","href":"/a","children":[
		{"label":"X","href":"/x","order":1},
		{"label":"Y","href":"/y"},
		{"label":"Z","href":"/z","order":3}
	]}]`

	res := apply(t, in, contentedit.Action{Op: navigation.OpRemove, Path: []int{0, 0}}, navigation.DefaultOptions())
	assert.Equal(t, `[{"label":"A","href":"/a","children":[{"label":"Y","href":"/y"},{"label":"Z","href":"/z","order":2}]}]`, jsonOf(res.Value))
}

func TestSetFieldsPreserveUnknownKeys(t *testing.T) {
	in := `[{"target":"_blank","label":"A","href":"/a","icon":"home"}]`
	opts := navigation.DefaultOptions()

	res := apply(t, in, contentedit.Action{Op: navigation.OpSetLabel, Path: []int{0}, Text: "Home"}, opts)
	assert.Equal(t, `[{"target":"_blank","label":"Home","href":"/a","icon":"home"}]`, jsonOf(res.Value))

	res = apply(t, in, contentedit.Action{Op: navigation.OpSetHref, Path: []int{0}, Text: "/"}, opts)
	assert.Equal(t, `[{"target":"_blank","label":"A","href":"/","icon":"home"}]`, jsonOf(res.Value))

	res = apply(t, in, contentedit.Action{Op: navigation.OpSetIcon, Path: []int{0}, Text: ""}, opts)
	assert.Equal(t, `[{"target":"_blank","label":"A","href":"/a"}]`, jsonOf(res.Value))

	res = apply(t, in, contentedit.Action{Op: navigation.OpSetLabel, Path: []int{0}, Text: "A"}, opts)
	assert.False(t, res.Changed)
}

func TestUntouchedNodesKeepTheirMembers(t *testing.T) {
	in := `[{"label":"A","href":"/a","order":"1","icon":null},{"label":2024,"href":"/b","order":1.5,"children":[]}]`
	opts := navigation.DefaultOptions()

	items, err := navigation.FromValue(contentedit.MustParse(in))
	require.NoError(t, err)
	assert.Equal(t, in, jsonOf(navigation.ToValue(items)))

	res := apply(t, in, contentedit.Action{Op: navigation.OpSetHref, Path: []int{0}, Text: "/a2"}, opts)
	require.True(t, res.Changed)
	assert.Equal(t, `{"label":"A","href":"/a2","order":"1","icon":null}`, jsonOf(res.Value.Index(0)))
	assert.Equal(t, `{"label":2024,"href":"/b","order":1.5,"children":[]}`, jsonOf(res.Value.Index(1)))

	// Child edits leave the root level order alone.
	in = `[{"label":"A","href":"/a","order":7,"children":[{"label":"X","href":"/x"}]},{"label":"B","href":"/b","order":"z"}]`
	res = apply(t, in, contentedit.Action{Op: navigation.OpSetLabel, Path: []int{0, 0}, Text: "Y"}, opts)
	assert.Equal(t, `[{"label":"A","href":"/a","order":7,"children":[{"label":"Y","href":"/x"}]},{"label":"B","href":"/b","order":"z"}]`, jsonOf(res.Value))

	nodes, err := navigation.Preview(contentedit.MustParse(`[{"label":2024,"href":"/b","order":1.5}]`))
	require.NoError(t, err)
	assert.Equal(t, "2024", nodes[0].Label)
	require.NotNil(t, nodes[0].Order)
	assert.Equal(t, "1.5", jsonOf(*nodes[0].Order))
}

func TestMoveOutOfRangeIsNoop(t *testing.T) {
	in := `[{"label":"A","href":"/a"},{"label":"B","href":"/b","children":[{"label":"X","href":"/x"}]}]`
	opts := navigation.DefaultOptions()

	for name, a := range map[string]contentedit.Action{
		"index past end":      {Op: navigation.OpMove, Path: []int{5}, Delta: -1},
		"negative index":      {Op: navigation.OpMove, Path: []int{-1}, Delta: 1},
		"parent missing":      {Op: navigation.OpMove, Path: []int{4, 0}, Delta: 1},
		"child level too far": {Op: navigation.OpMove, Path: []int{1, 3}, Delta: -1},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := navigation.Apply(contentedit.MustParse(in), a, opts)
			require.NoError(t, err)
			assert.False(t, res.Changed)
			assert.Equal(t, in, jsonOf(res.Value))
		})
	}
}

func TestMoveIsAdjacentOnly(t *testing.T) {
	in := `[{"label":"A","href":"/a"},{"label":"B","href":"/b"},{"label":"C","href":"/c"}]`
	opts := navigation.DefaultOptions()

	for _, delta := range []int{2, -2, 0} {
		res := apply(t, in, contentedit.Action{Op: navigation.OpMove, Path: []int{1}, Delta: delta}, opts)
		assert.False(t, res.Changed, "delta %d", delta)
	}

	ed, err := navigation.NewEditor(contentedit.MustParse(in), nil, opts)
	require.NoError(t, err)
	assert.False(t, ed.CanMove([]int{0}, 2))
	assert.True(t, ed.CanMove([]int{0}, 1))
}

func TestApply_Errors(t *testing.T) {
	opts := navigation.DefaultOptions()

	_, err := navigation.Apply(contentedit.MustParse(`{"label":"A"}`), contentedit.Action{Op: navigation.OpAddRoot}, opts)
	assert.ErrorIs(t, err, contentedit.ErrNotArray)

	_, err = navigation.Apply(contentedit.MustParse(`[1]`), contentedit.Action{Op: navigation.OpAddRoot}, opts)
	assert.ErrorIs(t, err, contentedit.ErrNotObject)

	_, err = navigation.Apply(contentedit.MustParse(`[]`), contentedit.Action{Op: navigation.OpRemove, Path: []int{0}}, opts)
	assert.ErrorIs(t, err, contentedit.ErrIndexOutOfRange)

	_, err = navigation.Apply(contentedit.MustParse(`[]`), contentedit.Action{Op: navigation.OpRemove}, opts)
	assert.ErrorIs(t, err, contentedit.ErrInvalidPointer)

	_, err = navigation.Apply(contentedit.MustParse(`[]`), contentedit.Action{Op: "shuffle", Path: []int{0}}, opts)
	assert.ErrorIs(t, err, contentedit.ErrUnknownOp)
}

func TestApply_NullTree(t *testing.T) {
	res := apply(t, `null`, contentedit.Action{Op: navigation.OpAddRoot}, navigation.DefaultOptions())
	assert.Equal(t, `[{"label":"New Item","href":"/","order":1}]`, jsonOf(res.Value))
}

func TestEditor_ExpansionFollowsNode(t *testing.T) {
	var calls int
	ed, err := navigation.NewEditor(contentedit.MustParse(`[
		{"label":"A","href":"/a","order":1,"children":[{"label":"X","href":"/x"}]},
		{"label":"B","href":"/b","order":2}
	]`), func(contentedit.Value) { calls++ }, navigation.DefaultOptions())
	require.NoError(t, err)

	a := ed.NodeKey([]int{0})
	child := ed.NodeKey([]int{0, 0})
	assert.True(t, ed.ToggleExpanded([]int{0}))

	changed, err := ed.Apply(contentedit.Action{Op: navigation.OpMove, Path: []int{0}, Delta: 1})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, a, ed.NodeKey([]int{1}))
	assert.Equal(t, child, ed.NodeKey([]int{1, 0}))
	assert.True(t, ed.IsExpanded([]int{1}))
	assert.False(t, ed.IsExpanded([]int{0}))

	changed, err = ed.Apply(contentedit.Action{Op: navigation.OpMove, Path: []int{1}, Delta: 1})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, calls)

	assert.False(t, ed.CanMove([]int{1}, 1))
	assert.True(t, ed.CanMove([]int{1}, -1))
	assert.True(t, ed.CanAddChild([]int{0}))
	assert.False(t, ed.CanAddChild([]int{1, 0}))

	// Removing the expanded node forgets it.
	_, err = ed.Apply(contentedit.Action{Op: navigation.OpRemove, Path: []int{1}})
	require.NoError(t, err)
	assert.False(t, ed.IsExpanded([]int{0}))
	assert.Equal(t, 2, calls)
}

func TestPreview(t *testing.T) {
	v := contentedit.MustParse(`[
		{"label":"Home","href":"/","order":1},
		{"label":"Docs","href":"/docs","order":2,"icon":"book","children":[{"label":"API","href":"/docs/api"}]}
	]`)

	nodes, err := navigation.Preview(v)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, 1, nodes[1].Children[0].Depth)

	var buf bytes.Buffer
	require.NoError(t, navigation.RenderPreview(&buf, nodes))
	assert.Equal(t, "- Home (/)\n- [book] Docs (/docs)\n  - API (/docs/api)\n", buf.String())
}
