// Package memory provides an in-memory field definition source, for tests
// and for servers started without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tendant/content-editor/pkg/contentedit"
)

// Store implements contentedit.FieldSource using in-memory storage
type Store struct {
	mu     sync.RWMutex
	fields map[string][]contentedit.FieldDefinition
}

// New creates a new in-memory store
func New() *Store {
	return &Store{fields: make(map[string][]contentedit.FieldDefinition)}
}

// FieldDefinitions returns the fields of contentType in display order.
func (s *Store) FieldDefinitions(ctx context.Context, contentType string) ([]contentedit.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs, exists := s.fields[contentType]
	if !exists {
		return nil, contentedit.ErrContentTypeNotFound
	}
	// Return a copy to prevent external modifications
	return copyDefinitions(defs), nil
}

// Put replaces the fields of contentType.
func (s *Store) Put(ctx context.Context, contentType string, defs []contentedit.FieldDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields[contentType] = copyDefinitions(defs)
	return nil
}

// Delete forgets contentType.
func (s *Store) Delete(ctx context.Context, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.fields[contentType]; !exists {
		return contentedit.ErrContentTypeNotFound
	}
	delete(s.fields, contentType)
	return nil
}

// ContentTypes lists the known content types in name order.
func (s *Store) ContentTypes(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.fields))
	for name := range s.fields {
		types = append(types, name)
	}
	sort.Strings(types)
	return types, nil
}

func copyDefinitions(defs []contentedit.FieldDefinition) []contentedit.FieldDefinition {
	out := make([]contentedit.FieldDefinition, len(defs))
	for i, d := range defs {
		out[i] = d
		if d.Options != nil {
			out[i].Options = append([]string(nil), d.Options...)
		}
	}
	return out
}
