package gallery

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tendant/content-editor/pkg/contentedit"
)

// ErrNoPendingPick is returned by Complete when no picker request is open.
var ErrNoPendingPick = errors.New("no media pick pending")

// PickRequest records why the picker was opened.
type PickRequest struct {
	Replace bool `json:"replace"`
	// Index is the item to replace; unused for additions.
	Index int `json:"index"`
}

// Picker is the media selection surface. The caller owns its open state and
// invokes onSelect once with the chosen media, or never when the user
// cancels.
type Picker interface {
	Open(req PickRequest, onSelect func(contentedit.MediaDescriptor))
}

// ChangeFunc receives every new gallery value.
type ChangeFunc func(contentedit.Value)

// Editor holds a gallery value with per-item identities and the pending
// picker request.
type Editor struct {
	value    contentedit.Value
	onChange ChangeFunc
	picker   Picker
	keys     *contentedit.ItemKeys
	pending  *PickRequest
}

// NewEditor creates a gallery editor. picker and onChange may be nil.
func NewEditor(v contentedit.Value, onChange ChangeFunc, picker Picker) *Editor {
	return &Editor{
		value:    v,
		onChange: onChange,
		picker:   picker,
		keys:     contentedit.NewItemKeys(v.Len()),
	}
}

// Value returns the current gallery.
func (e *Editor) Value() contentedit.Value { return e.value }

// ItemKey returns the identity of item i.
func (e *Editor) ItemKey(i int) uuid.UUID { return e.keys.Key(i) }

// Tiles resolves the current items.
func (e *Editor) Tiles(r contentedit.Resolver) []Tile { return Tiles(e.value, r) }

// Apply performs a and reports whether the gallery changed. onChange is only
// called on change.
func (e *Editor) Apply(a contentedit.Action) (bool, error) {
	res, err := Apply(e.value, a)
	if err != nil {
		return false, err
	}
	if !res.Changed {
		return false, nil
	}
	e.value = res.Value
	e.keys.Apply(res.Change)
	e.keys.Sync(e.value.Len())
	if e.onChange != nil {
		e.onChange(e.value)
	}
	return true, nil
}

// RequestAdd opens the picker to append an item.
func (e *Editor) RequestAdd() {
	e.request(PickRequest{})
}

// RequestReplace opens the picker to replace item i.
func (e *Editor) RequestReplace(i int) {
	e.request(PickRequest{Replace: true, Index: i})
}

// Pending returns the open picker request, if any.
func (e *Editor) Pending() (PickRequest, bool) {
	if e.pending == nil {
		return PickRequest{}, false
	}
	return *e.pending, true
}

// Cancel forgets the open picker request.
func (e *Editor) Cancel() {
	e.pending = nil
}

// Complete applies a picker selection to the open request.
func (e *Editor) Complete(d contentedit.MediaDescriptor) (bool, error) {
	if e.pending == nil {
		return false, ErrNoPendingPick
	}
	req := *e.pending
	e.pending = nil

	a := contentedit.Action{Op: OpAdd, Media: &d}
	if req.Replace {
		a.Op = OpReplace
		a.Index = req.Index
	}
	return e.Apply(a)
}

func (e *Editor) request(req PickRequest) {
	e.pending = &req
	if e.picker != nil {
		e.picker.Open(req, func(d contentedit.MediaDescriptor) {
			// A selection for an item that no longer exists is dropped.
			_, _ = e.Complete(d)
		})
	}
}
