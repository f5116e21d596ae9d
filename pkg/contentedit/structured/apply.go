// Package structured implements the generic editor for object maps, scalar
// lists and lists of objects.
//
// Apply is the pure transform used by every caller: it takes the previous
// value and one action and returns the new value. Editor wraps Apply with the
// view state a form needs (raw/structured mode, collapsed containers,
// expanded item cards) and reports changes through a single callback.
package structured

import (
	"github.com/tendant/content-editor/pkg/contentedit"
)

// Ops understood by Apply.
const (
	// Object maps
	OpSetProperty    contentedit.Op = "set_property"
	OpRenameKey      contentedit.Op = "rename_key"
	OpAddProperty    contentedit.Op = "add_property"
	OpDeleteProperty contentedit.Op = "delete_property"

	// Arrays
	OpAddItem    contentedit.Op = "add_item"
	OpSetItem    contentedit.Op = "set_item"
	OpRemoveItem contentedit.Op = "remove_item"

	// Fields of one object inside an object array
	OpSetField    contentedit.Op = "set_field"
	OpAddField    contentedit.Op = "add_field"
	OpRemoveField contentedit.Op = "remove_field"
)

// Options tunes Apply.
type Options struct {
	// UnifiedCoercion applies typed-slot coercion to object map and scalar
	// list edits too. Without it only object array fields keep their type and
	// other text edits store strings.
	UnifiedCoercion bool
}

// Option represents a functional option for Apply and Editor.
type Option func(*Options)

// WithUnifiedCoercion enables typed-slot coercion for every text edit.
func WithUnifiedCoercion() Option {
	return func(o *Options) {
		o.UnifiedCoercion = true
	}
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Apply performs a on the container addressed by a.Pointer inside v and
// returns the rebuilt value. v itself is never modified.
func Apply(v contentedit.Value, a contentedit.Action, opts ...Option) (contentedit.Result, error) {
	o := buildOptions(opts)

	var change contentedit.Change
	changed := false
	out, err := v.Update(a.Pointer, func(target contentedit.Value) (contentedit.Value, error) {
		next, c, err := applyAt(target, a, o)
		if err != nil {
			return target, err
		}
		changed = !next.Equal(target)
		change = c
		return next, nil
	})
	if err != nil {
		return contentedit.Unchanged(v), contentedit.NewEditError(a, err)
	}
	if !changed {
		return contentedit.Unchanged(v), nil
	}
	if a.Pointer != "" {
		// Only top-level reshapes move item identities.
		change = contentedit.Change{}
	}
	return contentedit.Result{Value: out, Changed: true, Change: change}, nil
}

func applyAt(target contentedit.Value, a contentedit.Action, o Options) (contentedit.Value, contentedit.Change, error) {
	none := contentedit.Change{}

	switch a.Op {
	case OpSetProperty:
		cur, ok := target.Get(a.Key)
		if !target.IsObject() {
			return target, none, contentedit.ErrNotObject
		}
		if !ok {
			return target, none, contentedit.ErrKeyNotFound
		}
		if cur.IsContainer() {
			return target, none, contentedit.ErrNotScalar
		}
		out, err := target.Set(a.Key, textValue(cur, a.Text, o.UnifiedCoercion))
		return out, none, err

	case OpRenameKey:
		out, err := target.Rename(a.Key, a.NewKey)
		return out, none, err

	case OpAddProperty:
		out, err := target.Set("", contentedit.String(""))
		return out, none, err

	case OpDeleteProperty:
		out, err := target.Delete(a.Key)
		return out, none, err

	case OpAddItem:
		if !target.IsArray() {
			return target, none, contentedit.ErrNotArray
		}
		blank := contentedit.String("")
		if contentedit.Classify(target, contentedit.HintNone) != contentedit.ClassSimpleArray {
			blank = contentedit.Object()
		}
		out, err := target.Append(blank)
		return out, contentedit.Change{Kind: contentedit.ChangeInsert, Index: target.Len()}, err

	case OpSetItem:
		if !target.IsArray() {
			return target, none, contentedit.ErrNotArray
		}
		if a.Index < 0 || a.Index >= target.Len() {
			return target, none, contentedit.ErrIndexOutOfRange
		}
		cur := target.Index(a.Index)
		if cur.IsContainer() {
			return target, none, contentedit.ErrNotScalar
		}
		out, err := target.SetIndex(a.Index, textValue(cur, a.Text, o.UnifiedCoercion))
		return out, none, err

	case OpRemoveItem:
		out, err := target.RemoveIndex(a.Index)
		return out, contentedit.Change{Kind: contentedit.ChangeRemove, Index: a.Index}, err

	case OpSetField, OpAddField, OpRemoveField:
		out, err := updateItem(target, a.Index, func(item contentedit.Value) (contentedit.Value, error) {
			return applyField(item, a)
		})
		return out, none, err

	default:
		return target, none, contentedit.ErrUnknownOp
	}
}

// applyField edits one key of one object inside an object array.
func applyField(item contentedit.Value, a contentedit.Action) (contentedit.Value, error) {
	if !item.IsObject() {
		return item, contentedit.ErrNotObject
	}
	switch a.Op {
	case OpSetField:
		cur, ok := item.Get(a.Key)
		if !ok {
			return item, contentedit.ErrKeyNotFound
		}
		if cur.IsContainer() {
			return item, contentedit.ErrNotScalar
		}
		return item.Set(a.Key, contentedit.Coerce(contentedit.SlotOf(cur), a.Text))
	case OpAddField:
		// Confirming an empty name, or a key the item already has, adds nothing.
		if a.Key == "" || item.Has(a.Key) {
			return item, nil
		}
		return item.Set(a.Key, contentedit.String(""))
	default:
		return item.Delete(a.Key)
	}
}

func updateItem(arr contentedit.Value, i int, fn func(contentedit.Value) (contentedit.Value, error)) (contentedit.Value, error) {
	if !arr.IsArray() {
		return arr, contentedit.ErrNotArray
	}
	if i < 0 || i >= arr.Len() {
		return arr, contentedit.ErrIndexOutOfRange
	}
	item, err := fn(arr.Index(i))
	if err != nil {
		return arr, err
	}
	return arr.SetIndex(i, item)
}

// textValue converts edited text for a map property or list item.
func textValue(cur contentedit.Value, text string, coerce bool) contentedit.Value {
	if coerce {
		return contentedit.Coerce(contentedit.SlotOf(cur), text)
	}
	return contentedit.String(text)
}
