package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/pkg/schema"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       schema.Schema
		wantErr string
	}{
		{
			name: "valid",
			s: schema.Schema{Fields: []schema.Field{
				{Name: "username", Type: "name"},
				{Name: "mail", Type: "email"},
			}},
		},
		{
			name:    "empty",
			s:       schema.Schema{},
			wantErr: "no fields",
		},
		{
			name: "duplicate name",
			s: schema.Schema{Fields: []schema.Field{
				{Name: "a", Type: "name"},
				{Name: "a", Type: "email"},
			}},
			wantErr: "duplicate",
		},
		{
			name: "missing type",
			s: schema.Schema{Fields: []schema.Field{
				{Name: "a"},
			}},
			wantErr: "type is required",
		},
		{
			name: "blank name",
			s: schema.Schema{Fields: []schema.Field{
				{Name: "  ", Type: "name"},
			}},
			wantErr: "name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestColumnNamesPreserveOrder(t *testing.T) {
	s := schema.Schema{Fields: []schema.Field{
		{Name: "z", Type: "name"},
		{Name: "a", Type: "email"},
		{Name: "m", Type: "uuid"},
	}}
	assert.Equal(t, []string{"z", "a", "m"}, s.ColumnNames())
}

func TestReadYAML(t *testing.T) {
	in := `
fields:
  - name: username
    type: name
  - name: bio
    type: ai_text
    context: "a short user bio"
`
	s, err := schema.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, schema.Field{Name: "username", Type: "name"}, s.Fields[0])
	assert.Equal(t, "a short user bio", s.Fields[1].Context)
}

func TestReadYAMLInvalid(t *testing.T) {
	_, err := schema.Read(strings.NewReader("fields: [{name: a}]"))
	require.Error(t, err)

	_, err = schema.Read(strings.NewReader("not: [valid"))
	require.Error(t, err)
}
