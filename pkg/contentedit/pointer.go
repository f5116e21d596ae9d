package contentedit

import (
	"strconv"
	"strings"
)

// ParsePointer splits an RFC 6901 JSON pointer into unescaped reference
// tokens. The empty pointer addresses the whole value.
func ParsePointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, ErrInvalidPointer
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(p, "~1", "/"), "~0", "~")
	}
	return parts, nil
}

// FormatPointer joins reference tokens into a JSON pointer.
func FormatPointer(tokens ...string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(t, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// At returns the value addressed by ptr.
func (v Value) At(ptr string) (Value, error) {
	tokens, err := ParsePointer(ptr)
	if err != nil {
		return Null(), err
	}
	cur := v
	for _, tok := range tokens {
		cur, err = child(cur, tok)
		if err != nil {
			return Null(), err
		}
	}
	return cur, nil
}

// Update replaces the value addressed by ptr with fn's result and rebuilds
// every container on the way back to the root. Containers off the path are
// shared, never copied.
func (v Value) Update(ptr string, fn func(Value) (Value, error)) (Value, error) {
	tokens, err := ParsePointer(ptr)
	if err != nil {
		return v, err
	}
	return update(v, tokens, fn)
}

func update(v Value, tokens []string, fn func(Value) (Value, error)) (Value, error) {
	if len(tokens) == 0 {
		return fn(v)
	}
	c, err := child(v, tokens[0])
	if err != nil {
		return v, err
	}
	nc, err := update(c, tokens[1:], fn)
	if err != nil {
		return v, err
	}
	if v.IsArray() {
		i, _ := arrayIndex(tokens[0], len(v.items))
		return v.SetIndex(i, nc)
	}
	return v.Set(tokens[0], nc)
}

func child(v Value, tok string) (Value, error) {
	switch v.Kind() {
	case KindArray:
		i, err := arrayIndex(tok, len(v.items))
		if err != nil {
			return Null(), err
		}
		return v.items[i], nil
	case KindObject:
		c, ok := v.Get(tok)
		if !ok {
			return Null(), ErrKeyNotFound
		}
		return c, nil
	default:
		return Null(), ErrInvalidPointer
	}
}

func arrayIndex(tok string, n int) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, ErrInvalidPointer
	}
	i, err := strconv.Atoi(tok)
	if err != nil || i < 0 {
		return 0, ErrInvalidPointer
	}
	if i >= n {
		return 0, ErrIndexOutOfRange
	}
	return i, nil
}
