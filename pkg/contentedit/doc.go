// Package contentedit provides the building blocks for editing schema-advisory
// JSON content values.
//
// A content entry stores its field data as arbitrary JSON. Content types only
// suggest field names and types, so stored values may carry extra keys, miss
// keys or nest structures nobody described. This package models such values
// as an ordered, immutable Value tree and infers how each one should be
// presented and edited.
//
// Value Model
//
// Value preserves object key order from parse to encode. Every edit returns a
// new Value; containers are never mutated in place, so a previous Value stays
// valid for memoization or undo layers built around the editors.
//
// Classification
//
// Classify maps a Value (and an optional TypeHint taken from field metadata)
// to one Classification. Editors in the structured, gallery and navigation
// subpackages consume that tag instead of inspecting shapes on their own.
//
// Typed Slots
//
// Scalars edited through text inputs keep their original primitive kind:
// SlotOf records the kind before the edit and Coerce converts the edited text
// back into it.
package contentedit
