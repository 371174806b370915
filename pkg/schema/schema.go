// Package schema models the ordered field specification consumed by the
// row generator.
package schema

import (
	"fmt"
	"strings"
)

// Field describes one column to generate.
type Field struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`

	// Context is the AI prompt for context-text fields; ignored for all
	// other types.
	Context string `yaml:"context,omitempty"`
}

// Schema is an ordered list of uniquely named fields. It is built once and
// read-only during generation.
type Schema struct {
	Fields []Field `yaml:"fields"`
}

// Validate checks field names for presence and uniqueness and types for
// presence. It does not check that types are registered; unknown types
// degrade to sentinel values at generation time.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema has no fields")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if strings.TrimSpace(f.Type) == "" {
			return fmt.Errorf("field %q: type is required", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate field name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// ColumnNames returns field names in schema order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
