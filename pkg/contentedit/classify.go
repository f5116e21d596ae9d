package contentedit

import "strings"

// Classification is the rendering strategy chosen for a Value.
type Classification string

// Classifications, in the order Classify tests them.
const (
	ClassMediaGalleryArray Classification = "media_gallery_array"
	ClassSimpleArray       Classification = "simple_array"
	ClassObjectArray       Classification = "object_array"
	ClassObjectMap         Classification = "object_map"
	ClassPrimitive         Classification = "primitive"
)

// IsValid reports whether c is one of the known classifications.
func (c Classification) IsValid() bool {
	switch c {
	case ClassMediaGalleryArray, ClassSimpleArray, ClassObjectArray, ClassObjectMap, ClassPrimitive:
		return true
	}
	return false
}

// TypeHint is a rendering hint derived from field metadata.
type TypeHint string

// Type hints understood by Classify and EditorFor.
const (
	HintNone         TypeHint = ""
	HintNavigation   TypeHint = "navigation"
	HintMediaGallery TypeHint = "media_gallery"
)

// EditorKind names the editor a field is delegated to.
type EditorKind string

// Editor kinds.
const (
	EditorScalar     EditorKind = "scalar"
	EditorStructured EditorKind = "structured"
	EditorGallery    EditorKind = "gallery"
	EditorNavigation EditorKind = "navigation"
)

// mediaKeys are the lower-cased keys that mark an object as a media item.
var mediaKeys = map[string]struct{}{
	"url":   {},
	"src":   {},
	"image": {},
}

// Classify returns the rendering strategy for v.
//
// A media gallery hint selects ClassMediaGalleryArray for any array or null
// value. Otherwise the shape decides:
//
//  1. a non-empty array of objects where some object has a url, src or image
//     key (case-insensitive) is a media gallery;
//  2. an array without object elements is a simple array (this includes the
//     empty array);
//  3. an array with at least one object element is an object array;
//  4. an object is an object map;
//  5. anything else is a primitive.
//
// Nested arrays count as object elements, so they are never flattened into
// text rows.
func Classify(v Value, hint TypeHint) Classification {
	if hint == HintMediaGallery && (v.IsArray() || v.IsNull()) {
		return ClassMediaGalleryArray
	}

	switch v.Kind() {
	case KindArray:
		if isMediaGallery(v) {
			return ClassMediaGalleryArray
		}
		for _, item := range v.items {
			if item.IsContainer() {
				return ClassObjectArray
			}
		}
		return ClassSimpleArray
	case KindObject:
		return ClassObjectMap
	default:
		return ClassPrimitive
	}
}

// EditorFor picks the editor for v. Hints only apply to values the hinted
// editor can hold (arrays or null); everything else falls back to shape.
func EditorFor(v Value, hint TypeHint) EditorKind {
	if hint == HintNavigation && (v.IsArray() || v.IsNull()) {
		return EditorNavigation
	}
	switch Classify(v, hint) {
	case ClassMediaGalleryArray:
		return EditorGallery
	case ClassPrimitive:
		return EditorScalar
	default:
		return EditorStructured
	}
}

// IsMediaKey reports whether key names a media location under the gallery
// heuristic.
func IsMediaKey(key string) bool {
	_, ok := mediaKeys[strings.ToLower(key)]
	return ok
}

func isMediaGallery(v Value) bool {
	if len(v.items) == 0 {
		return false
	}
	found := false
	for _, item := range v.items {
		if !item.IsContainer() {
			return false
		}
		if found || !item.IsObject() {
			continue
		}
		for _, m := range item.members {
			if IsMediaKey(m.Key) {
				found = true
				break
			}
		}
	}
	return found
}
