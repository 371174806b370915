package rowgen_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/qaforge/pkg/dataset"
	"github.com/qaforge/qaforge/pkg/plan"
	"github.com/qaforge/qaforge/pkg/rowgen"
	"github.com/qaforge/qaforge/pkg/textgen"
)

var threeScenarioPlan = plan.TestPlan{
	Fields: []string{"email", "password"},
	Scenarios: []plan.Scenario{
		{Name: "valid_login", TestType: "positive", Description: "correct credentials"},
		{Name: "bad_password", TestType: "negative", Description: "wrong password"},
		{Name: "empty_form", TestType: "negative", Description: "all fields empty"},
	},
}

// scenarioService answers row requests by echoing the scenario description
// embedded in the prompt, and fails for scenarios listed in failFor.
func scenarioService(rows int, failFor ...string) textgen.Service {
	return textgen.GenerateFunc(func(_ context.Context, prompt string) (string, error) {
		for _, name := range failFor {
			for _, sc := range threeScenarioPlan.Scenarios {
				if sc.Name == name && strings.Contains(prompt, sc.Description) {
					return "", &textgen.ServiceError{Op: "generate", Reason: "forced failure"}
				}
			}
		}
		var desc string
		for _, sc := range threeScenarioPlan.Scenarios {
			if strings.Contains(prompt, sc.Description) {
				desc = sc.Description
			}
		}
		objs := make([]string, rows)
		for i := range objs {
			objs[i] = fmt.Sprintf(`{"email": "user%d@example.com", "password": "pw%d", "desc": %q}`, i, i, desc)
		}
		return "```json\n[" + strings.Join(objs, ",") + "]\n```", nil
	})
}

func TestGenerateForPlan(t *testing.T) {
	g := rowgen.NewScenarioGenerator(scenarioService(2), nil, rowgen.ScenarioOptions{})

	ds, skipped, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 2)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, 6, ds.Len())

	// Provenance columns lead, then the plan's fields.
	cols := ds.Columns()
	assert.Equal(t, dataset.ColScenarioName, cols[0])
	assert.Equal(t, dataset.ColTestType, cols[1])
	assert.Equal(t, "email", cols[2])
	assert.Equal(t, "password", cols[3])

	// Rows appear in scenario order with correct tags.
	assert.Equal(t, "valid_login", ds.Cell(0, dataset.ColScenarioName))
	assert.Equal(t, "positive", ds.Cell(0, dataset.ColTestType))
	assert.Equal(t, "bad_password", ds.Cell(2, dataset.ColScenarioName))
	assert.Equal(t, "empty_form", ds.Cell(4, dataset.ColScenarioName))
	assert.Equal(t, "negative", ds.Cell(5, dataset.ColTestType))
}

func TestGenerateForPlanSkipsFailedScenario(t *testing.T) {
	g := rowgen.NewScenarioGenerator(scenarioService(2, "bad_password"), nil, rowgen.ScenarioOptions{})

	ds, skipped, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.LessOrEqual(t, ds.Len(), 4)

	for i := 0; i < ds.Len(); i++ {
		assert.NotEqual(t, "bad_password", ds.Cell(i, dataset.ColScenarioName))
	}
}

func TestGenerateForPlanAllScenariosFail(t *testing.T) {
	svc := textgen.GenerateFunc(func(context.Context, string) (string, error) {
		return "", errors.New("down")
	})
	g := rowgen.NewScenarioGenerator(svc, nil, rowgen.ScenarioOptions{})

	_, skipped, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 2)
	require.Error(t, err)
	assert.Equal(t, 3, skipped)
}

func TestGenerateForPlanTakesWhatIsReturned(t *testing.T) {
	// Service returns 1 row when 3 were requested; no padding, no error.
	g := rowgen.NewScenarioGenerator(scenarioService(1), nil, rowgen.ScenarioOptions{})

	ds, skipped, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 3)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, 3, ds.Len())
}

func TestGenerateForPlanDeterministicOrderWhenParallel(t *testing.T) {
	g := rowgen.NewScenarioGenerator(scenarioService(1), nil, rowgen.ScenarioOptions{Workers: 3})

	for trial := 0; trial < 5; trial++ {
		ds, _, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 1)
		require.NoError(t, err)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, "valid_login", ds.Cell(0, dataset.ColScenarioName))
		assert.Equal(t, "bad_password", ds.Cell(1, dataset.ColScenarioName))
		assert.Equal(t, "empty_form", ds.Cell(2, dataset.ColScenarioName))
	}
}

func TestGenerateForPlanRejectsBadInput(t *testing.T) {
	g := rowgen.NewScenarioGenerator(scenarioService(1), nil, rowgen.ScenarioOptions{})

	_, _, err := g.GenerateForPlan(context.Background(), threeScenarioPlan, 0)
	assert.Error(t, err)

	_, _, err = g.GenerateForPlan(context.Background(), plan.TestPlan{Fields: []string{"a"}}, 2)
	var pe *plan.PlanError
	assert.ErrorAs(t, err, &pe)
}
