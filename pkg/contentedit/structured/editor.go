package structured

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tendant/content-editor/pkg/contentedit"
)

// ErrRawMode is returned when a structured action arrives while the editor is
// showing raw JSON text.
var ErrRawMode = errors.New("editor is in raw mode")

// Mode is the representation an Editor currently shows.
type Mode int

const (
	ModeStructured Mode = iota
	ModeRaw
)

func (m Mode) String() string {
	if m == ModeRaw {
		return "raw"
	}
	return "structured"
}

// ChangeFunc receives every new value an editor produces.
type ChangeFunc func(contentedit.Value)

// Editor holds one container value together with its view state. It is not
// safe for concurrent use; each field owns its own editor.
type Editor struct {
	value    contentedit.Value
	onChange ChangeFunc
	opts     []Option

	mode    Mode
	raw     string
	invalid bool

	collapsed bool
	keys      *contentedit.ItemKeys
	expanded  contentedit.Expansion
}

// NewEditor creates an editor in structured mode. onChange may be nil.
func NewEditor(v contentedit.Value, onChange ChangeFunc, opts ...Option) *Editor {
	return &Editor{
		value:    v,
		onChange: onChange,
		opts:     opts,
		keys:     contentedit.NewItemKeys(v.Len()),
		expanded: contentedit.Expansion{},
	}
}

// Value returns the last valid value.
func (e *Editor) Value() contentedit.Value { return e.value }

// Classification returns the shape of the current value.
func (e *Editor) Classification() contentedit.Classification {
	return contentedit.Classify(e.value, contentedit.HintNone)
}

// Mode returns the current representation.
func (e *Editor) Mode() Mode { return e.mode }

// RawText returns the raw buffer. It is only meaningful in raw mode.
func (e *Editor) RawText() string { return e.raw }

// InvalidJSON reports whether the raw buffer currently fails to parse.
func (e *Editor) InvalidJSON() bool { return e.invalid }

// Apply performs a structured action and reports whether the value changed.
func (e *Editor) Apply(a contentedit.Action) (bool, error) {
	if e.mode == ModeRaw {
		return false, contentedit.NewEditError(a, ErrRawMode)
	}
	res, err := Apply(e.value, a, e.opts...)
	if err != nil {
		return false, err
	}
	if !res.Changed {
		return false, nil
	}
	e.keys.Apply(res.Change)
	e.commit(res.Value)
	return true, nil
}

// ToggleMode switches between structured and raw representation.
//
// Entering raw mode fills the buffer with the pretty-printed value. Leaving
// it parses the buffer; if the text is not valid JSON the editor stays in raw
// mode with the text untouched and the indicator set.
func (e *Editor) ToggleMode() Mode {
	if e.mode == ModeStructured {
		e.raw = string(contentedit.MarshalIndent(e.value))
		e.invalid = false
		e.mode = ModeRaw
		return e.mode
	}
	if !e.parseRaw() {
		return e.mode
	}
	e.mode = ModeStructured
	return e.mode
}

// EditRaw replaces the raw buffer. A buffer that parses becomes the new
// value; one that does not only sets the indicator.
func (e *Editor) EditRaw(text string) {
	if e.mode != ModeRaw {
		e.raw = string(contentedit.MarshalIndent(e.value))
		e.mode = ModeRaw
	}
	e.raw = text
	e.parseRaw()
}

// Reset replaces the value without notifying, as when a new entry is loaded.
// View state is discarded.
func (e *Editor) Reset(v contentedit.Value) {
	e.value = v
	e.mode = ModeStructured
	e.raw = ""
	e.invalid = false
	e.collapsed = false
	e.keys = contentedit.NewItemKeys(v.Len())
	e.expanded = contentedit.Expansion{}
}

// ToggleCollapsed flips the container's visibility and returns true when it
// is now collapsed.
func (e *Editor) ToggleCollapsed() bool {
	e.collapsed = !e.collapsed
	return e.collapsed
}

// Collapsed reports whether the container is collapsed.
func (e *Editor) Collapsed() bool { return e.collapsed }

// ItemKey returns the identity of item i of an array value.
func (e *Editor) ItemKey(i int) uuid.UUID { return e.keys.Key(i) }

// ToggleExpanded flips the card of item i and returns its new state.
func (e *Editor) ToggleExpanded(i int) bool {
	id := e.keys.Key(i)
	if id == uuid.Nil {
		return false
	}
	return e.expanded.Toggle(id)
}

// IsExpanded reports whether the card of item i is expanded.
func (e *Editor) IsExpanded(i int) bool {
	return e.expanded.IsExpanded(e.keys.Key(i))
}

func (e *Editor) parseRaw() bool {
	v, err := contentedit.ParseString(e.raw)
	if err != nil {
		e.invalid = true
		return false
	}
	e.invalid = false
	if v.Equal(e.value) {
		return true
	}
	// A raw edit may reshape anything, so identities start over.
	e.keys = contentedit.NewItemKeys(v.Len())
	e.expanded = contentedit.Expansion{}
	e.commit(v)
	return true
}

func (e *Editor) commit(v contentedit.Value) {
	e.value = v
	e.keys.Sync(v.Len())
	e.expanded.Retain(func(id uuid.UUID) bool { return e.keys.IndexOf(id) >= 0 })
	if e.onChange != nil {
		e.onChange(v)
	}
}
