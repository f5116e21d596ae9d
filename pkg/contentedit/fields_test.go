package contentedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-editor/pkg/contentedit"
)

func TestHintFor(t *testing.T) {
	assert.Equal(t, contentedit.HintNavigation, contentedit.HintFor("navigation"))
	assert.Equal(t, contentedit.HintNavigation, contentedit.HintFor(" Menu "))
	assert.Equal(t, contentedit.HintMediaGallery, contentedit.HintFor("media_gallery"))
	assert.Equal(t, contentedit.HintMediaGallery, contentedit.HintFor("gallery"))
	assert.Equal(t, contentedit.HintNone, contentedit.HintFor("json"))
	assert.Equal(t, contentedit.HintNone, contentedit.HintFor(""))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Hero Image", contentedit.LabelFor("hero_image", nil))
	assert.Equal(t, "Seo Meta Title", contentedit.LabelFor("seo-meta.title", nil))
	assert.Equal(t, "Custom", contentedit.LabelFor("hero_image", &contentedit.FieldDefinition{Label: "Custom"}))
}

func TestPlan_WithoutDefinitions(t *testing.T) {
	data := contentedit.MustParse(`{
		"title": "Home",
		"gallery": [{"url":"a.jpg"}],
		"menu": [{"label":"A","href":"/a"}],
		"meta": {"k":"v"},
		"tags": ["a","b"]
	}`)

	plans, err := contentedit.Plan(data, nil)
	require.NoError(t, err)
	require.Len(t, plans, 5)

	got := map[string]contentedit.EditorKind{}
	for _, p := range plans {
		got[p.Name] = p.Editor
	}
	assert.Equal(t, map[string]contentedit.EditorKind{
		"title":   contentedit.EditorScalar,
		"gallery": contentedit.EditorGallery,
		"menu":    contentedit.EditorStructured,
		"meta":    contentedit.EditorStructured,
		"tags":    contentedit.EditorStructured,
	}, got)
	assert.Equal(t, "title", plans[0].Name)
	assert.Equal(t, "Title", plans[0].Label)
}

func TestPlan_WithDefinitions(t *testing.T) {
	data := contentedit.MustParse(`{"menu":[{"label":"A","href":"/a"}],"extra":1}`)
	defs := []contentedit.FieldDefinition{
		{Name: "menu", Type: "navigation", Label: "Main Menu", Required: true},
		{Name: "photos", Type: "gallery", HelpText: "Shown on top"},
	}

	plans, err := contentedit.Plan(data, defs)
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "menu", plans[0].Name)
	assert.Equal(t, "Main Menu", plans[0].Label)
	assert.Equal(t, contentedit.EditorNavigation, plans[0].Editor)
	assert.True(t, plans[0].Required)

	assert.Equal(t, "extra", plans[1].Name)
	assert.Equal(t, contentedit.EditorScalar, plans[1].Editor)

	assert.Equal(t, "photos", plans[2].Name)
	assert.True(t, plans[2].Missing)
	assert.Equal(t, contentedit.EditorGallery, plans[2].Editor)
	assert.Equal(t, contentedit.ClassMediaGalleryArray, plans[2].Classification)
}

func TestPlan_RejectsNonObjectData(t *testing.T) {
	_, err := contentedit.Plan(contentedit.MustParse(`[1]`), nil)
	assert.ErrorIs(t, err, contentedit.ErrNotObject)

	plans, err := contentedit.Plan(contentedit.Null(), nil)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
