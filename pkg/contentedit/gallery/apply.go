// Package gallery edits ordered lists of media items.
//
// Items are objects of the form {"url": ..., "alt": ...}; other keys are
// kept as they are. Order is carried by array position only, so no item
// stores an order field.
package gallery

import (
	"errors"

	"github.com/tendant/content-editor/pkg/contentedit"
)

// Ops understood by Apply.
const (
	OpAdd        contentedit.Op = "add"
	OpReplace    contentedit.Op = "replace"
	OpRemove     contentedit.Op = "remove"
	OpMove       contentedit.Op = "move"
	OpSetCaption contentedit.Op = "set_caption"
)

// Item keys.
const (
	KeyURL = "url"
	KeyAlt = "alt"
)

// ErrMissingMedia is returned by add and replace actions without a media
// descriptor.
var ErrMissingMedia = errors.New("media descriptor required")

// ItemFromDescriptor builds the stored item for a picker selection.
func ItemFromDescriptor(d contentedit.MediaDescriptor) contentedit.Value {
	return contentedit.Object(
		contentedit.Member{Key: KeyURL, Value: contentedit.String(d.Location())},
		contentedit.Member{Key: KeyAlt, Value: contentedit.String(d.Caption())},
	)
}

// Apply performs a on the gallery v. A null gallery is treated as empty.
//
// Moving an item past either end, or moving an index that does not exist,
// is not an error: the result reports Changed == false.
func Apply(v contentedit.Value, a contentedit.Action) (contentedit.Result, error) {
	if v.IsNull() {
		v = contentedit.Array()
	}
	if !v.IsArray() {
		return contentedit.Unchanged(v), contentedit.NewEditError(a, contentedit.ErrNotArray)
	}

	var (
		out    contentedit.Value
		change contentedit.Change
		err    error
	)
	switch a.Op {
	case OpAdd:
		if a.Media == nil {
			return contentedit.Unchanged(v), contentedit.NewEditError(a, ErrMissingMedia)
		}
		out, err = v.Append(ItemFromDescriptor(*a.Media))
		change = contentedit.Change{Kind: contentedit.ChangeInsert, Index: v.Len()}

	case OpReplace:
		if a.Media == nil {
			return contentedit.Unchanged(v), contentedit.NewEditError(a, ErrMissingMedia)
		}
		out, err = v.SetIndex(a.Index, ItemFromDescriptor(*a.Media))

	case OpRemove:
		out, err = v.RemoveIndex(a.Index)
		change = contentedit.Change{Kind: contentedit.ChangeRemove, Index: a.Index}

	case OpMove:
		target, ok := a.MoveTarget(a.Index, v.Len())
		if !ok {
			return contentedit.Unchanged(v), nil
		}
		out, err = v.Swap(a.Index, target)
		change = contentedit.Change{Kind: contentedit.ChangeSwap, Index: a.Index, With: target}

	case OpSetCaption:
		if a.Index < 0 || a.Index >= v.Len() {
			return contentedit.Unchanged(v), contentedit.NewEditError(a, contentedit.ErrIndexOutOfRange)
		}
		var item contentedit.Value
		item, err = v.Index(a.Index).Set(KeyAlt, contentedit.String(a.Text))
		if err == nil {
			out, err = v.SetIndex(a.Index, item)
		}

	default:
		err = contentedit.ErrUnknownOp
	}
	if err != nil {
		return contentedit.Unchanged(v), contentedit.NewEditError(a, err)
	}
	if out.Equal(v) {
		return contentedit.Unchanged(v), nil
	}
	return contentedit.Result{Value: out, Changed: true, Change: change}, nil
}
