// Package app wires the generation pipelines to their CSV sinks.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/qaforge/qaforge/pkg/dataset"
	"github.com/qaforge/qaforge/pkg/gen"
	"github.com/qaforge/qaforge/pkg/plan"
	"github.com/qaforge/qaforge/pkg/rowgen"
	"github.com/qaforge/qaforge/pkg/schema"
	"github.com/qaforge/qaforge/pkg/textgen"
)

// SchemaRun configures the schema-driven pipeline.
type SchemaRun struct {
	Schema     schema.Schema
	Rows       int
	Policy     gen.Case
	OutputPath string
}

// RunSchema generates rows from a schema and writes one CSV.
func RunSchema(ctx context.Context, reg *gen.Registry, run SchemaRun, logger *slog.Logger) error {
	start := time.Now()

	ds, err := rowgen.Generate(ctx, reg, run.Schema, run.Rows, run.Policy)
	if err != nil {
		return err
	}

	outPath := EnsureCSVExt(run.OutputPath)
	if err := writeCSVFile(outPath, ds); err != nil {
		return err
	}

	logger.Info("schema run complete",
		"rows", ds.Len(),
		"columns", len(ds.Columns()),
		"sentinel_cells", countSentinelCells(ds),
		"output", outPath,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// PlanRun configures the requirement-driven pipeline.
type PlanRun struct {
	Requirement string

	// RowsPerScenario is used when UseAdvisor is false.
	RowsPerScenario int
	// UseAdvisor asks the service to recommend the per-scenario row count.
	UseAdvisor bool

	// OutputBase is the base output path; the run writes
	// <base>_full_report.csv and <base>_data_only.csv.
	OutputBase string

	Scenario rowgen.ScenarioOptions
}

// RunPlan synthesizes a plan from the requirement, generates rows for every
// scenario, and writes the full report plus the data-only CSV. Both files
// derive from the one generated dataset. A plan failure aborts before any
// generation; per-scenario failures only shrink the output.
func RunPlan(ctx context.Context, svc textgen.Service, run PlanRun, logger *slog.Logger) error {
	start := time.Now()

	synth := plan.NewSynthesizer(svc, logger)
	p, err := synth.Synthesize(ctx, run.Requirement)
	if err != nil {
		return err
	}

	rows := run.RowsPerScenario
	if run.UseAdvisor {
		rows = synth.AdviseRowCount(ctx, p)
	}
	if rows <= 0 {
		rows = plan.DefaultRowsPerScenario
	}

	ds, skipped, err := rowgen.NewScenarioGenerator(svc, logger, run.Scenario).GenerateForPlan(ctx, p, rows)
	if err != nil {
		return err
	}

	fullPath, dataPath := ReportPaths(run.OutputBase)
	if err := writeCSVFile(fullPath, ds.FullReport()); err != nil {
		return err
	}
	if err := writeCSVFile(dataPath, ds.DataOnly()); err != nil {
		return err
	}

	logger.Info("plan run complete",
		"scenarios", len(p.Scenarios),
		"skipped_scenarios", skipped,
		"rows", ds.Len(),
		"full_report", fullPath,
		"data_only", dataPath,
		"duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// EnsureCSVExt appends ".csv" when the path has no such suffix.
func EnsureCSVExt(path string) string {
	if strings.HasSuffix(path, ".csv") {
		return path
	}
	return path + ".csv"
}

// ReportPaths derives the full-report and data-only file names from a base
// output path.
func ReportPaths(base string) (fullReport, dataOnly string) {
	base = strings.TrimSuffix(EnsureCSVExt(base), ".csv")
	return base + "_full_report.csv", base + "_data_only.csv"
}

func writeCSVFile(path string, ds *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, ds); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func countSentinelCells(ds *dataset.Dataset) int {
	count := 0
	for i := 0; i < ds.Len(); i++ {
		for _, col := range ds.Columns() {
			switch v := ds.Cell(i, col); {
			case strings.HasPrefix(v, "NO_GENERATOR_FOR_"),
				v == gen.AIDisabled,
				v == gen.AIGenerationError:
				count++
			}
		}
	}
	return count
}
