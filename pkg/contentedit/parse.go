package contentedit

import (
	"github.com/tidwall/gjson"
)

// Parse decodes JSON text into a Value, preserving object key order.
// Invalid text yields ErrInvalidJSON.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Null(), ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// ParseString is Parse for string input.
func ParseString(text string) (Value, error) {
	return Parse([]byte(text))
}

// Valid reports whether text is a complete JSON document.
func Valid(text string) bool {
	return gjson.Valid(text)
}

// MustParse is like ParseString but panics on invalid input. Intended for
// literals in tests and fixtures.
func MustParse(text string) Value {
	v, err := ParseString(text)
	if err != nil {
		panic("contentedit: MustParse(" + text + "): " + err.Error())
	}
	return v
}

func fromResult(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return Bool(false)
	case gjson.True:
		return Bool(true)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	}

	if r.IsArray() {
		items := make([]Value, 0)
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, fromResult(item))
			return true
		})
		return Value{kind: KindArray, items: items}
	}

	members := make([]Member, 0)
	r.ForEach(func(key, item gjson.Result) bool {
		members = append(members, Member{Key: key.Str, Value: fromResult(item)})
		return true
	})
	// Repeated keys keep their first position and their last value.
	return Object(members...)
}
