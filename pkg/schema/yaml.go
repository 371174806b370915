package schema

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Read parses a YAML schema document.
//
// Expected shape:
//
//	fields:
//	  - name: username
//	    type: name
//	  - name: bio
//	    type: ai_text
//	    context: "a short user bio for a social app"
func Read(r io.Reader) (Schema, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema: %w", err)
	}

	var s Schema
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Schema{}, fmt.Errorf("parse schema YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Load reads and validates a YAML schema file.
func Load(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return Schema{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(f)
}
