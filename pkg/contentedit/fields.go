package contentedit

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldDefinition is the advisory description of one field of a content
// type. It is never enforced: it only supplies a label and a rendering hint.
type FieldDefinition struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Label    string   `json:"label,omitempty"`
	Required bool     `json:"required,omitempty"`
	HelpText string   `json:"help_text,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// FieldSource supplies field definitions per content type.
type FieldSource interface {
	// FieldDefinitions returns the suggested fields of contentType in display
	// order. Unknown content types yield ErrContentTypeNotFound.
	FieldDefinitions(ctx context.Context, contentType string) ([]FieldDefinition, error)
}

// HintFor maps a field type to a rendering hint.
func HintFor(fieldType string) TypeHint {
	switch strings.ToLower(strings.TrimSpace(fieldType)) {
	case "navigation", "navigation_items", "nav", "menu":
		return HintNavigation
	case "gallery", "media_gallery", "image_gallery", "images":
		return HintMediaGallery
	default:
		return HintNone
	}
}

// LabelFor returns the label of a field: the definition's label when set,
// otherwise a humanized field name ("hero_image" -> "Hero Image").
func LabelFor(name string, def *FieldDefinition) string {
	if def != nil && def.Label != "" {
		return def.Label
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// FieldPlan is the editing plan for one field of an entry.
type FieldPlan struct {
	Name           string         `json:"name"`
	Label          string         `json:"label"`
	Type           string         `json:"type,omitempty"`
	Required       bool           `json:"required,omitempty"`
	HelpText       string         `json:"help_text,omitempty"`
	Classification Classification `json:"classification"`
	Editor         EditorKind     `json:"editor"`
	// Missing marks a suggested field that the entry data does not hold.
	Missing bool  `json:"missing,omitempty"`
	Value   Value `json:"value"`
}

// Plan classifies every field of an entry's data and picks its editor.
// Fields appear in data order, followed by suggested fields the data lacks.
// Definitions are optional; without them every field is planned from its
// value's shape.
func Plan(data Value, defs []FieldDefinition) ([]FieldPlan, error) {
	if data.IsNull() {
		data = Object()
	}
	if !data.IsObject() {
		return nil, ErrNotObject
	}

	byName := make(map[string]*FieldDefinition, len(defs))
	for i := range defs {
		byName[defs[i].Name] = &defs[i]
	}

	plans := make([]FieldPlan, 0, data.Len()+len(defs))
	for _, m := range data.members {
		plans = append(plans, planField(m.Key, m.Value, byName[m.Key], false))
	}
	for i := range defs {
		if data.Has(defs[i].Name) {
			continue
		}
		plans = append(plans, planField(defs[i].Name, Null(), &defs[i], true))
	}
	return plans, nil
}

func planField(name string, v Value, def *FieldDefinition, missing bool) FieldPlan {
	hint := HintNone
	plan := FieldPlan{
		Name:    name,
		Label:   LabelFor(name, def),
		Missing: missing,
		Value:   v,
	}
	if def != nil {
		hint = HintFor(def.Type)
		plan.Type = def.Type
		plan.Required = def.Required
		plan.HelpText = def.HelpText
	}
	plan.Classification = Classify(v, hint)
	plan.Editor = EditorFor(v, hint)
	return plan
}
