package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/qaforge/qaforge/internal/app"
	"github.com/qaforge/qaforge/pkg/gen"
	"github.com/qaforge/qaforge/pkg/schema"
	"github.com/qaforge/qaforge/pkg/textgen"
)

var (
	genSchemaPath string
	genRows       int
	genCase       string
	genOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate rows from a field schema",
	Long: `Generate rows from a field schema.

With --schema the schema is read from a YAML file; without it an interactive
builder collects the fields. Each field has a type (name, email, password,
integer, date, uuid, ai_text) and the run-wide case policy decides whether
values are valid-shaped (positive), invalid-shaped (negative), or drawn
per field (mixed).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, ok := gen.ParseCase(genCase)
		if !ok {
			return fmt.Errorf("invalid --case %q (want positive, negative, or mixed)", genCase)
		}

		svc := loadService(cmd.Context(), logger)
		reg := gen.NewRegistry(svc, logger, gen.Options{})

		var s schema.Schema
		var err error
		if genSchemaPath != "" {
			s, err = schema.Load(genSchemaPath)
		} else {
			s, err = buildSchemaInteractively(reg, textgen.Available(svc))
		}
		if err != nil {
			return err
		}

		return app.RunSchema(cmd.Context(), reg, app.SchemaRun{
			Schema:     s,
			Rows:       genRows,
			Policy:     policy,
			OutputPath: genOutput,
		}, logger)
	},
}

// buildSchemaInteractively collects fields one at a time until the user
// stops adding them.
func buildSchemaInteractively(reg *gen.Registry, aiEnabled bool) (schema.Schema, error) {
	var s schema.Schema

	typeOptions := make([]huh.Option[string], 0, len(reg.TypeNames()))
	for _, name := range reg.TypeNames() {
		label := name
		if name == gen.TypeAIText && !aiEnabled {
			label = name + " (disabled: no API key)"
		}
		typeOptions = append(typeOptions, huh.NewOption(label, name))
	}

	for {
		var fieldName, fieldType string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Name for field #%d", len(s.Fields)+1)).
					Placeholder("username").
					Value(&fieldName).
					Validate(func(v string) error {
						v = strings.TrimSpace(v)
						if v == "" {
							return errors.New("field name is required")
						}
						for _, f := range s.Fields {
							if f.Name == v {
								return fmt.Errorf("field %q already defined", v)
							}
						}
						return nil
					}),
				huh.NewSelect[string]().
					Title("Data type").
					Options(typeOptions...).
					Value(&fieldType),
			),
		)
		if err := form.Run(); err != nil {
			return schema.Schema{}, err
		}

		field := schema.Field{Name: strings.TrimSpace(fieldName), Type: fieldType}
		if fieldType == gen.TypeAIText && aiEnabled {
			var context string
			prompt := huh.NewForm(
				huh.NewGroup(
					huh.NewText().
						Title(fmt.Sprintf("AI context prompt for %q", field.Name)).
						Placeholder("a short product review, 1-2 sentences").
						Value(&context),
				),
			)
			if err := prompt.Run(); err != nil {
				return schema.Schema{}, err
			}
			field.Context = strings.TrimSpace(context)
		}
		s.Fields = append(s.Fields, field)

		var more bool
		cont := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Add another field?").
					Value(&more),
			),
		)
		if err := cont.Run(); err != nil {
			return schema.Schema{}, err
		}
		if !more {
			break
		}
	}

	if err := s.Validate(); err != nil {
		return schema.Schema{}, err
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genSchemaPath, "schema", "", "YAML schema file (omit for interactive builder)")
	generateCmd.Flags().IntVar(&genRows, "rows", 10, "Number of rows to generate")
	generateCmd.Flags().StringVar(&genCase, "case", "positive", "Case policy: positive, negative, or mixed")
	generateCmd.Flags().StringVar(&genOutput, "output", "testdata.csv", "Output CSV path")
}
