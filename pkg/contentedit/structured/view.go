package structured

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/tendant/content-editor/pkg/contentedit"
)

// Row is one line of an object map or simple array form.
type Row struct {
	// Key is the property name; empty for array rows.
	Key   string `json:"key,omitempty"`
	Index int    `json:"index"`
	Text  string `json:"text"`
	// Pointer addresses the row's value, for nested container editors.
	Pointer string                     `json:"pointer"`
	Nested  bool                       `json:"nested,omitempty"`
	Class   contentedit.Classification `json:"classification,omitempty"`
}

// Card is one item of an object array.
type Card struct {
	ID       uuid.UUID          `json:"id"`
	Index    int                `json:"index"`
	Expanded bool               `json:"expanded"`
	Slots    []contentedit.Slot `json:"slots"`
}

// Rows lists the rows of an object map or simple array value. Nested
// containers are reported with their classification so a caller can mount
// another editor at the row's pointer.
func Rows(v contentedit.Value, base string) []Row {
	var rows []Row
	switch {
	case v.IsObject():
		for i, m := range v.Members() {
			rows = append(rows, newRow(m.Key, i, m.Value, base+contentedit.FormatPointer(m.Key)))
		}
	case v.IsArray():
		for i, item := range v.Items() {
			rows = append(rows, newRow("", i, item, base+contentedit.FormatPointer(strconv.Itoa(i))))
		}
	}
	return rows
}

func newRow(key string, i int, v contentedit.Value, ptr string) Row {
	r := Row{Key: key, Index: i, Text: v.Text(), Pointer: ptr}
	if v.IsContainer() {
		r.Nested = true
		r.Class = contentedit.Classify(v, contentedit.HintNone)
	}
	return r
}

// Rows lists the rows of the editor's current value.
func (e *Editor) Rows() []Row {
	return Rows(e.value, "")
}

// Cards lists the items of an object array value with their expansion state.
// Non-object items yield a card without slots.
func (e *Editor) Cards() []Card {
	if !e.value.IsArray() {
		return nil
	}
	cards := make([]Card, 0, e.value.Len())
	for i, item := range e.value.Items() {
		cards = append(cards, Card{
			ID:       e.keys.Key(i),
			Index:    i,
			Expanded: e.IsExpanded(i),
			Slots:    contentedit.TagSlots(item),
		})
	}
	return cards
}
