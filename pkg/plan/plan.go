// Package plan turns a free-text requirement into a structured test plan via
// the text-generation capability, and advises on per-scenario row counts.
package plan

import (
	"strconv"
	"strings"
)

// Scenario is one named, described test situation from a plan.
type Scenario struct {
	Name        string `json:"scenario_name"`
	TestType    string `json:"test_type"`
	Description string `json:"description"`
}

// TestPlan is the structured output of plan synthesis: the field set every
// generated row must carry, plus the ordered scenario list.
type TestPlan struct {
	Fields    []string   `json:"fields"`
	Scenarios []Scenario `json:"scenarios"`
}

// Validate reports whether the plan is usable for generation.
func (p TestPlan) Validate() error {
	if len(p.Fields) == 0 {
		return &PlanError{Reason: "plan has no fields"}
	}
	for _, f := range p.Fields {
		if strings.TrimSpace(f) == "" {
			return &PlanError{Reason: "plan contains an empty field name"}
		}
	}
	if len(p.Scenarios) == 0 {
		return &PlanError{Reason: "plan has no scenarios"}
	}
	for i, sc := range p.Scenarios {
		if strings.TrimSpace(sc.Name) == "" {
			return &PlanError{Reason: "scenario " + strconv.Itoa(i) + " has no name"}
		}
	}
	return nil
}

// PlanError means plan synthesis produced nothing usable. It is fatal to the
// requirement-driven pipeline; this package never retries.
type PlanError struct {
	Reason string
	Err    error
}

func (e *PlanError) Error() string {
	msg := "test plan"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PlanError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
