package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/qaforge/qaforge/internal/app"
	"github.com/qaforge/qaforge/pkg/plan"
	"github.com/qaforge/qaforge/pkg/textgen"
)

var (
	planRequirement string
	planRows        string
	planOutput      string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate data from a free-text requirement",
	Long: `Generate data from a free-text requirement.

The requirement is turned into a structured test plan (field list plus
scenarios), each scenario is expanded into rows by the text provider, and
two files are written: <output>_full_report.csv with scenario provenance
columns and <output>_data_only.csv for automation tools.

--rows takes a number or "ideal" to let the provider recommend a
per-scenario row count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := loadService(cmd.Context(), logger)
		if !textgen.Available(svc) {
			return errors.New("plan mode needs a configured text provider (set GEMINI_API_KEY or OPENAI_API_KEY)")
		}

		requirement := strings.TrimSpace(planRequirement)
		if requirement == "" {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewText().
						Title("Describe the feature to generate test data for").
						Placeholder("a login form with email and password").
						Value(&requirement).
						Validate(func(v string) error {
							if strings.TrimSpace(v) == "" {
								return errors.New("requirement cannot be empty")
							}
							return nil
						}),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}
		}

		run := app.PlanRun{
			Requirement: requirement,
			OutputBase:  planOutput,
		}
		switch v := strings.ToLower(strings.TrimSpace(planRows)); v {
		case "ideal", "ai", "auto":
			run.UseAdvisor = true
		default:
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				logger.Warn("invalid --rows, using default",
					"rows", planRows,
					"default", plan.DefaultRowsPerScenario)
				n = plan.DefaultRowsPerScenario
			}
			run.RowsPerScenario = n
		}

		opts, err := loadScenarioOptionsFromEnv()
		if err != nil {
			return fmt.Errorf("config error: %w", err)
		}
		run.Scenario = opts

		return app.RunPlan(cmd.Context(), svc, run, logger)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planRequirement, "requirement", "", "Free-text requirement (omit for interactive prompt)")
	planCmd.Flags().StringVar(&planRows, "rows", "3", `Rows per scenario, or "ideal" for a provider recommendation`)
	planCmd.Flags().StringVar(&planOutput, "output", "testdata", "Base output path for the report pair")
}
