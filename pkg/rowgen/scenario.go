package rowgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/qaforge/qaforge/pkg/dataset"
	"github.com/qaforge/qaforge/pkg/plan"
	"github.com/qaforge/qaforge/pkg/redact"
	"github.com/qaforge/qaforge/pkg/textgen"
	"github.com/qaforge/qaforge/pkg/worker"
)

// ScenarioOptions tunes the per-scenario service requests.
type ScenarioOptions struct {
	// Workers bounds concurrent scenario requests. Defaults to 1
	// (sequential); output order is by scenario index either way.
	Workers        int
	MaxRetries     int
	RequestTimeout time.Duration
	RateLimitRPS   float64
}

// ScenarioGenerator expands each scenario of a test plan into structured
// rows via the text service.
type ScenarioGenerator struct {
	svc    textgen.Service
	logger *slog.Logger
	opts   ScenarioOptions
}

func NewScenarioGenerator(svc textgen.Service, logger *slog.Logger, opts ScenarioOptions) *ScenarioGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScenarioGenerator{
		svc:    svc,
		logger: logger,
		opts:   opts,
	}
}

// GenerateForPlan requests rowsPerScenario rows for every scenario and
// concatenates the results in plan order, tagging each row with its
// scenario's name and test type. A failed scenario is logged and skipped;
// skipped counts how many were. The run fails only when every scenario
// failed (or the context was cancelled).
func (g *ScenarioGenerator) GenerateForPlan(ctx context.Context, p plan.TestPlan, rowsPerScenario int) (ds *dataset.Dataset, skipped int, err error) {
	if rowsPerScenario <= 0 {
		return nil, 0, fmt.Errorf("rows per scenario must be positive, got %d", rowsPerScenario)
	}
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	processor := func(reqCtx context.Context, sc plan.Scenario) ([]map[string]string, error) {
		raw, err := g.svc.Generate(reqCtx, scenarioPrompt(sc, p.Fields, rowsPerScenario))
		if err != nil {
			return nil, err
		}
		return plan.DecodeRows(raw)
	}

	results, err := worker.ProcessAll(ctx, p.Scenarios, processor, worker.Options{
		Workers:        g.opts.Workers,
		MaxRetries:     g.opts.MaxRetries,
		RequestTimeout: g.opts.RequestTimeout,
		RateLimitRPS:   g.opts.RateLimitRPS,
	})
	if err != nil {
		return nil, 0, err
	}

	columns := append([]string{dataset.ColScenarioName, dataset.ColTestType}, p.Fields...)
	ds = dataset.New(columns...)

	for _, res := range results {
		sc := res.Input
		if res.Err != nil {
			skipped++
			g.logger.Warn("scenario skipped",
				"scenario", sc.Name,
				"error", redact.Secrets(res.Err.Error()))
			continue
		}
		// Take what the service returned; do not pad or trim on mismatch.
		if len(res.Output) != rowsPerScenario {
			g.logger.Warn("scenario returned unexpected row count",
				"scenario", sc.Name,
				"want", rowsPerScenario,
				"got", len(res.Output))
		}
		for _, row := range res.Output {
			rec := make(dataset.Record, len(row)+2)
			for k, v := range row {
				rec[k] = v
			}
			rec[dataset.ColScenarioName] = sc.Name
			rec[dataset.ColTestType] = sc.TestType
			ds.Append(rec)
		}
	}

	if ds.Len() == 0 && skipped == len(p.Scenarios) {
		return nil, skipped, fmt.Errorf("all %d scenarios failed", skipped)
	}
	return ds, skipped, nil
}

func scenarioPrompt(sc plan.Scenario, fields []string, rows int) string {
	keys, _ := json.Marshal(fields)
	return fmt.Sprintf(`Generate %d unique JSON objects of test data that precisely match the following test scenario.
Scenario Description: %q
Each JSON object MUST contain exactly these keys: %s.
The values you generate for each key should be appropriate for the scenario.
Your response MUST be a single, valid JSON array containing the %d objects, and nothing else.`,
		rows, sc.Description, keys, rows)
}
