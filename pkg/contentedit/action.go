package contentedit

import "strconv"

// Op names an edit operation. Each editor package declares the ops it
// understands.
type Op string

// MediaDescriptor is the selection delivered by a media picker. It carries
// one of URL, PublicURL or StoragePath and one of AltText or Filename.
type MediaDescriptor struct {
	URL         string `json:"url,omitempty"`
	PublicURL   string `json:"public_url,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// Location picks the stored location by priority url > public_url >
// storage_path.
func (d MediaDescriptor) Location() string {
	switch {
	case d.URL != "":
		return d.URL
	case d.PublicURL != "":
		return d.PublicURL
	default:
		return d.StoragePath
	}
}

// Caption picks the caption by priority alt_text > filename > "".
func (d MediaDescriptor) Caption() string {
	if d.AltText != "" {
		return d.AltText
	}
	return d.Filename
}

// Action is one edit request. Which fields matter depends on Op.
type Action struct {
	Op Op `json:"op"`

	// Pointer selects the nested container a structured edit applies to.
	Pointer string `json:"pointer,omitempty"`
	// Path addresses a navigation node by index at each level.
	Path []int `json:"path,omitempty"`

	Index  int    `json:"index,omitempty"`
	Key    string `json:"key,omitempty"`
	NewKey string `json:"new_key,omitempty"`
	Text   string `json:"text,omitempty"`
	// Delta is -1 to move towards the start, +1 towards the end.
	Delta int `json:"delta,omitempty"`

	Media *MediaDescriptor `json:"media,omitempty"`
}

// MoveTarget returns the index that item index swaps with in a list of
// length n. ok is false unless Delta is -1 or +1 and both indexes are in
// range; such moves leave the list untouched.
func (a Action) MoveTarget(index, n int) (target int, ok bool) {
	if a.Delta != 1 && a.Delta != -1 {
		return index, false
	}
	target = index + a.Delta
	if index < 0 || index >= n || target < 0 || target >= n {
		return index, false
	}
	return target, true
}

// Location describes where the action applies, for error messages.
func (a Action) Location() string {
	if a.Pointer != "" {
		return a.Pointer
	}
	if len(a.Path) > 0 {
		tokens := make([]string, len(a.Path))
		for i, p := range a.Path {
			tokens[i] = strconv.Itoa(p)
		}
		return FormatPointer(tokens...)
	}
	return ""
}

// ChangeKind classifies the structural effect of an edit on one array level.
type ChangeKind int

// Change kinds.
const (
	ChangeNone ChangeKind = iota
	ChangeInsert
	ChangeRemove
	ChangeSwap
	ChangeReset
)

// Change describes how an edit reshaped an array level, so that transient
// per-item state can follow its item. Parent is the index path of the node
// owning the level; nil means the top level.
type Change struct {
	Kind   ChangeKind
	Parent []int
	Index  int
	With   int
}

// Result is the outcome of applying an Action. Changed is false when the
// action was a no-op; callers must not report a change in that case.
type Result struct {
	Value   Value
	Changed bool
	Change  Change
}

// Unchanged returns a Result carrying v as a no-op.
func Unchanged(v Value) Result {
	return Result{Value: v}
}
