package gallery

import (
	"path"
	"strings"

	"github.com/tendant/content-editor/pkg/contentedit"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
	".svg":  {},
	".bmp":  {},
	".ico":  {},
}

// Tile is the display form of one gallery item.
type Tile struct {
	Index int `json:"index"`
	// Source is the stored location as found in the item.
	Source string `json:"source"`
	// URL is the resolved absolute URL, empty when it cannot be resolved.
	URL string `json:"url"`
	Alt string `json:"alt"`
	// Image is false when the item must be shown as a file placeholder.
	Image bool `json:"image"`
}

// Tiles resolves every item of the gallery v. A nil resolver uses stored
// locations as they are.
func Tiles(v contentedit.Value, r contentedit.Resolver) []Tile {
	if !v.IsArray() {
		return nil
	}
	tiles := make([]Tile, 0, v.Len())
	for i, item := range v.Items() {
		src := Source(item)
		t := Tile{Index: i, Source: src, Alt: Alt(item)}
		if r != nil {
			t.URL = r.Resolve(src)
		} else {
			t.URL = src
		}
		t.Image = IsImage(t.URL)
		tiles = append(tiles, t)
	}
	return tiles
}

// Source returns the stored location of item: the url key when present,
// otherwise the first string member named like a media key.
func Source(item contentedit.Value) string {
	if u, ok := item.Get(KeyURL); ok && u.Kind() == contentedit.KindString {
		return u.AsString()
	}
	for _, m := range item.Members() {
		if contentedit.IsMediaKey(m.Key) && m.Value.Kind() == contentedit.KindString {
			return m.Value.AsString()
		}
	}
	return ""
}

// Alt returns the caption of item, or "".
func Alt(item contentedit.Value) string {
	a, _ := item.Get(KeyAlt)
	return a.AsString()
}

// IsImage reports whether the resolved URL points at an image file by
// extension. Query strings and fragments are ignored.
func IsImage(u string) bool {
	if u == "" {
		return false
	}
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	_, ok := imageExtensions[strings.ToLower(path.Ext(u))]
	return ok
}
