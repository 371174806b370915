package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/qaforge/qaforge/pkg/textgen"
)

// Synthesizer builds test plans from free-text requirements.
type Synthesizer struct {
	svc    textgen.Service
	logger *slog.Logger

	// RequestTimeout bounds each service call. Defaults to 60s.
	RequestTimeout time.Duration
}

func NewSynthesizer(svc textgen.Service, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		svc:            svc,
		logger:         logger,
		RequestTimeout: 60 * time.Second,
	}
}

// Synthesize asks the service for a plan shaped exactly as
// {fields: [...], scenarios: [...]} and validates it. Any failure is a
// *PlanError; the caller decides whether to retry.
func (s *Synthesizer) Synthesize(ctx context.Context, requirement string) (TestPlan, error) {
	requirement = strings.TrimSpace(requirement)
	if requirement == "" {
		return TestPlan{}, &PlanError{Reason: "requirement is empty"}
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	raw, err := s.svc.Generate(reqCtx, synthesisPrompt(requirement))
	if err != nil {
		return TestPlan{}, &PlanError{Reason: "service call failed", Err: err}
	}

	p, err := decodePlan(raw)
	if err != nil {
		return TestPlan{}, &PlanError{Reason: "unparseable response", Err: err}
	}
	if err := p.Validate(); err != nil {
		return TestPlan{}, err
	}

	s.logger.Info("test plan synthesized",
		"fields", len(p.Fields),
		"scenarios", len(p.Scenarios))
	return p, nil
}

func synthesisPrompt(requirement string) string {
	return fmt.Sprintf(`As an expert QA Test Analyst, analyze the following user requirement and generate a structured test plan in JSON format.
User Requirement: %q
Your response MUST be a single, valid JSON object with two top-level keys: "fields" (a list of strings) and "scenarios" (a list of objects with keys 'scenario_name', 'test_type', and 'description'), and nothing else.`, requirement)
}

func marshalPlan(p TestPlan) string {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		// TestPlan is plain strings; this cannot fail in practice.
		return fmt.Sprintf("%+v", p)
	}
	return string(b)
}
