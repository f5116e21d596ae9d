package contentedit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/content-editor/pkg/contentedit"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		hint  contentedit.TypeHint
		want  contentedit.Classification
	}{
		{"gallery by url", `[{"url":"a.jpg","alt":"A"}]`, contentedit.HintNone, contentedit.ClassMediaGalleryArray},
		{"gallery mixed key case", `[{"url":"a.jpg"},{"SRC":"b.png"}]`, contentedit.HintNone, contentedit.ClassMediaGalleryArray},
		{"gallery by image key on later item", `[{"title":"x"},{"Image":"b.png"}]`, contentedit.HintNone, contentedit.ClassMediaGalleryArray},
		{"url substring is not a media key", `[{"url_slug":"x"}]`, contentedit.HintNone, contentedit.ClassObjectArray},
		{"null element blocks gallery", `[{"url":"a.jpg"},null]`, contentedit.HintNone, contentedit.ClassObjectArray},
		{"scalar element blocks gallery", `[{"url":"a.jpg"},"b.jpg"]`, contentedit.HintNone, contentedit.ClassObjectArray},
		{"simple array", `["a",1,true,null]`, contentedit.HintNone, contentedit.ClassSimpleArray},
		{"empty array", `[]`, contentedit.HintNone, contentedit.ClassSimpleArray},
		{"object array", `[{"name":"Item 1","value":100}]`, contentedit.HintNone, contentedit.ClassObjectArray},
		{"nested arrays count as objects", `[[1,2],[3]]`, contentedit.HintNone, contentedit.ClassObjectArray},
		{"object map", `{"a":1}`, contentedit.HintNone, contentedit.ClassObjectMap},
		{"empty object", `{}`, contentedit.HintNone, contentedit.ClassObjectMap},
		{"string", `"hello"`, contentedit.HintNone, contentedit.ClassPrimitive},
		{"number", `42`, contentedit.HintNone, contentedit.ClassPrimitive},
		{"null", `null`, contentedit.HintNone, contentedit.ClassPrimitive},
		{"gallery hint on empty array", `[]`, contentedit.HintMediaGallery, contentedit.ClassMediaGalleryArray},
		{"gallery hint on null", `null`, contentedit.HintMediaGallery, contentedit.ClassMediaGalleryArray},
		{"gallery hint ignored for object", `{"a":1}`, contentedit.HintMediaGallery, contentedit.ClassObjectMap},
		{"navigation hint keeps shape", `[{"label":"A","href":"/a"}]`, contentedit.HintNavigation, contentedit.ClassObjectArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := contentedit.MustParse(tt.input)
			got := contentedit.Classify(v, tt.hint)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
			// Deterministic: a second call on the same shape agrees.
			assert.Equal(t, got, contentedit.Classify(contentedit.MustParse(tt.input), tt.hint))
		})
	}
}

func TestEditorFor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		hint  contentedit.TypeHint
		want  contentedit.EditorKind
	}{
		{"scalar", `"x"`, contentedit.HintNone, contentedit.EditorScalar},
		{"map", `{"a":1}`, contentedit.HintNone, contentedit.EditorStructured},
		{"list", `[1,2]`, contentedit.HintNone, contentedit.EditorStructured},
		{"gallery by shape", `[{"src":"a.png"}]`, contentedit.HintNone, contentedit.EditorGallery},
		{"gallery by hint", `[]`, contentedit.HintMediaGallery, contentedit.EditorGallery},
		{"navigation by hint", `[{"label":"A","href":"/"}]`, contentedit.HintNavigation, contentedit.EditorNavigation},
		{"navigation hint on null", `null`, contentedit.HintNavigation, contentedit.EditorNavigation},
		{"navigation hint on string falls back", `"x"`, contentedit.HintNavigation, contentedit.EditorScalar},
		{"navigation without hint is structured", `[{"label":"A","href":"/"}]`, contentedit.HintNone, contentedit.EditorStructured},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentedit.EditorFor(contentedit.MustParse(tt.input), tt.hint))
		})
	}
}
