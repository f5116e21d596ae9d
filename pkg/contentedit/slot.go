package contentedit

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPrefix matches the longest leading decimal number of a text.
var numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// SlotKind is the primitive kind a scalar had before it was edited as text.
type SlotKind string

// Slot kinds. Anything that is neither a number nor a boolean edits as text.
const (
	SlotString SlotKind = "string"
	SlotNumber SlotKind = "number"
	SlotBool   SlotKind = "boolean"
)

// SlotOf returns the slot kind recorded for v.
func SlotOf(v Value) SlotKind {
	switch v.Kind() {
	case KindNumber:
		return SlotNumber
	case KindBool:
		return SlotBool
	default:
		return SlotString
	}
}

// Coerce converts edited text back into a Value of the given kind.
//
// Numbers take the longest leading decimal number of the text, so "12px"
// gives 12, and fall back to 0 when there is none or it is not finite.
// Booleans are true only for the literal text "true". Everything else is
// kept as a string.
func Coerce(kind SlotKind, text string) Value {
	switch kind {
	case SlotNumber:
		prefix := numberPrefix.FindString(strings.TrimSpace(text))
		n, err := strconv.ParseFloat(prefix, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return Number(0)
		}
		return Number(n)
	case SlotBool:
		return Bool(text == "true")
	default:
		return String(text)
	}
}

// Slot is one scalar member of an object tagged with its original kind.
type Slot struct {
	Key  string   `json:"key"`
	Kind SlotKind `json:"kind"`
	Text string   `json:"text"`
	// Nested is set when the member holds an array or object; those are
	// edited through their own container editor rather than as text.
	Nested bool `json:"nested,omitempty"`
}

// Commit coerces edited text using the slot's recorded kind.
func (s Slot) Commit(text string) Value {
	return Coerce(s.Kind, text)
}

// TagSlots records the slot of every member of obj, in key order.
func TagSlots(obj Value) []Slot {
	if !obj.IsObject() {
		return nil
	}
	slots := make([]Slot, 0, len(obj.members))
	for _, m := range obj.members {
		slots = append(slots, Slot{
			Key:    m.Key,
			Kind:   SlotOf(m.Value),
			Text:   m.Value.Text(),
			Nested: m.Value.IsContainer(),
		})
	}
	return slots
}
