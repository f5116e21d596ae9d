package contentedit

// Kind is the JSON type of a Value.
type Kind int

// Value kinds. The zero Value is null.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value entry of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value whose objects keep their key order.
//
// Methods that edit a Value return a new one and leave the receiver intact.
// Containers of the returned Value share untouched children with the
// receiver; since nothing mutates in place that sharing is never observable.
type Value struct {
	kind    Kind
	b       bool
	n       float64
	s       string
	items   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value holding a copy of items.
func Array(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindArray, items: out}
}

// Object returns an object Value. A repeated key keeps the position of its
// first occurrence and the value of its last one.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if i := indexOfKey(out, m.Key); i >= 0 {
			out[i].Value = m.Value
			continue
		}
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsArray reports whether v is an array.
func (v Value) IsArray() bool { return v.kind == KindArray }

// IsObject reports whether v is an object (arrays are not objects).
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool { return v.kind == KindArray || v.kind == KindObject }

// AsBool returns the boolean held by v, or false.
func (v Value) AsBool() bool { return v.kind == KindBool && v.b }

// AsNumber returns the number held by v, or 0.
func (v Value) AsNumber() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.n
}

// AsString returns the string held by v, or "".
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Len returns the number of array items or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the array item at i, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Null()
	}
	return v.items[i]
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// Members returns a copy of the object members in key order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	out := make([]Member, len(v.members))
	copy(out, v.members)
	return out
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the member value stored under key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	if i := indexOfKey(v.members, key); i >= 0 {
		return v.members[i].Value, true
	}
	return Null(), false
}

// Has reports whether the object holds key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Equal reports whether v and o are the same JSON value, including the order
// of object keys.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.members) != len(o.members) {
			return false
		}
		for i := range v.members {
			if v.members[i].Key != o.members[i].Key || !v.members[i].Value.Equal(o.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Text returns the text shown for a scalar in a text input. Null renders as
// an empty string; containers render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return string(appendNumber(nil, v.n))
	case KindString:
		return v.s
	default:
		return string(Marshal(v))
	}
}

// Copy-on-write editing

// Append returns a copy of the array with x added at the end.
func (v Value) Append(x Value) (Value, error) {
	if v.kind != KindArray {
		return v, ErrNotArray
	}
	items := make([]Value, len(v.items), len(v.items)+1)
	copy(items, v.items)
	return Value{kind: KindArray, items: append(items, x)}, nil
}

// SetIndex returns a copy of the array with item i replaced by x.
func (v Value) SetIndex(i int, x Value) (Value, error) {
	if v.kind != KindArray {
		return v, ErrNotArray
	}
	if i < 0 || i >= len(v.items) {
		return v, ErrIndexOutOfRange
	}
	items := v.Items()
	items[i] = x
	return Value{kind: KindArray, items: items}, nil
}

// RemoveIndex returns a copy of the array without item i.
func (v Value) RemoveIndex(i int) (Value, error) {
	if v.kind != KindArray {
		return v, ErrNotArray
	}
	if i < 0 || i >= len(v.items) {
		return v, ErrIndexOutOfRange
	}
	items := make([]Value, 0, len(v.items)-1)
	items = append(items, v.items[:i]...)
	items = append(items, v.items[i+1:]...)
	return Value{kind: KindArray, items: items}, nil
}

// Swap returns a copy of the array with items i and j exchanged.
func (v Value) Swap(i, j int) (Value, error) {
	if v.kind != KindArray {
		return v, ErrNotArray
	}
	if i < 0 || i >= len(v.items) || j < 0 || j >= len(v.items) {
		return v, ErrIndexOutOfRange
	}
	items := v.Items()
	items[i], items[j] = items[j], items[i]
	return Value{kind: KindArray, items: items}, nil
}

// Set returns a copy of the object with key bound to x. An existing key keeps
// its position; a new key is appended.
func (v Value) Set(key string, x Value) (Value, error) {
	if v.kind != KindObject {
		return v, ErrNotObject
	}
	members := v.Members()
	if i := indexOfKey(members, key); i >= 0 {
		members[i].Value = x
	} else {
		members = append(members, Member{Key: key, Value: x})
	}
	return Value{kind: KindObject, members: members}, nil
}

// Delete returns a copy of the object without key. Deleting a missing key
// returns the object unchanged.
func (v Value) Delete(key string) (Value, error) {
	if v.kind != KindObject {
		return v, ErrNotObject
	}
	i := indexOfKey(v.members, key)
	if i < 0 {
		return v, nil
	}
	members := make([]Member, 0, len(v.members)-1)
	members = append(members, v.members[:i]...)
	members = append(members, v.members[i+1:]...)
	return Value{kind: KindObject, members: members}, nil
}

// Rename moves the value stored under from to the key to. The renamed entry
// is re-inserted at the end unless to already exists, in which case that
// entry is overwritten in place.
func (v Value) Rename(from, to string) (Value, error) {
	if v.kind != KindObject {
		return v, ErrNotObject
	}
	x, ok := v.Get(from)
	if !ok {
		return v, ErrKeyNotFound
	}
	if from == to {
		return v, nil
	}
	out, _ := v.Delete(from)
	return out.Set(to, x)
}

func indexOfKey(members []Member, key string) int {
	for i, m := range members {
		if m.Key == key {
			return i
		}
	}
	return -1
}
