package plan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/qaforge/qaforge/pkg/redact"
)

// DefaultRowsPerScenario is the advisor's fallback when the service cannot
// produce a usable recommendation.
const DefaultRowsPerScenario = 3

// AdviseRowCount asks the service how many rows per scenario give good
// coverage. Purely advisory: every failure path logs a warning and returns
// DefaultRowsPerScenario, never an error.
func (s *Synthesizer) AdviseRowCount(ctx context.Context, p TestPlan) int {
	reqCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	raw, err := s.svc.Generate(reqCtx, advisorPrompt(p))
	if err != nil {
		s.logger.Warn("row count advice failed, using default",
			"default", DefaultRowsPerScenario,
			"error", redact.Secrets(err.Error()))
		return DefaultRowsPerScenario
	}

	n, err := strconv.Atoi(strings.TrimSpace(StripFences(raw)))
	if err != nil || n < 1 {
		s.logger.Warn("row count advice unparseable, using default",
			"default", DefaultRowsPerScenario,
			"response", strings.TrimSpace(raw))
		return DefaultRowsPerScenario
	}

	s.logger.Info("row count advised", "rows_per_scenario", n)
	return n
}

func advisorPrompt(p TestPlan) string {
	return fmt.Sprintf(`As a QA Lead, analyze the following test plan. Based on the number and variety of scenarios, determine the ideal number of test data rows to generate PER SCENARIO to achieve good test coverage without being excessive.

Test Plan:
%s

Your response MUST be a single integer and nothing else. For example: 3`, marshalPlan(p))
}
