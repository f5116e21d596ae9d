package contentedit

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidJSON indicates text that does not parse as JSON
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrNotArray indicates an array operation on a non-array value
	ErrNotArray = errors.New("value is not an array")

	// ErrNotObject indicates an object operation on a non-object value
	ErrNotObject = errors.New("value is not an object")

	// ErrIndexOutOfRange indicates an item index outside the container
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyNotFound indicates a missing object key
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotScalar indicates a text edit aimed at an array or object
	ErrNotScalar = errors.New("value is not a scalar")

	// ErrInvalidPointer indicates a malformed or unresolvable JSON pointer
	ErrInvalidPointer = errors.New("invalid pointer")

	// ErrUnknownOp indicates an action op the editor does not support
	ErrUnknownOp = errors.New("unknown operation")

	// ErrMaxDepth indicates a navigation child beyond the configured depth
	ErrMaxDepth = errors.New("maximum navigation depth reached")

	// ErrChildrenDisabled indicates a child insertion while children are disabled
	ErrChildrenDisabled = errors.New("navigation children are disabled")

	// ErrContentTypeNotFound indicates a content type without field definitions
	ErrContentTypeNotFound = errors.New("content type not found")
)

// EditError reports a failed edit action.
type EditError struct {
	Op      Op
	Pointer string
	Err     error
}

func (e *EditError) Error() string {
	if e.Pointer == "" {
		return fmt.Sprintf("edit %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("edit %s failed at %s: %v", e.Op, e.Pointer, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// NewEditError wraps err for action a.
func NewEditError(a Action, err error) error {
	if err == nil {
		return nil
	}
	return &EditError{Op: a.Op, Pointer: a.Location(), Err: err}
}
