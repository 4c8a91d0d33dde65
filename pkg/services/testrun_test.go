package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
	"github.com/caseflow/caseflow/pkg/persistence/file"
	"github.com/caseflow/caseflow/pkg/registry"
)

func TestConditionEvaluator_Operators(t *testing.T) {
	t.Parallel()

	evaluator := NewConditionEvaluator()

	tests := []struct {
		name      string
		condition models.Condition
		actual    any
		want      bool
	}{
		{"equals match", models.Condition{Field: "status", Operator: "equals", Value: "matched"}, "matched", true},
		{"equals mismatch", models.Condition{Field: "status", Operator: "equals", Value: "matched"}, "screening", false},
		{"equals numeric field", models.Condition{Field: "age", Operator: "equals", Value: "30"}, float64(30), true},
		{"equals nil actual", models.Condition{Field: "stage", Operator: "equals", Value: "x"}, nil, false},
		{"not_equals", models.Condition{Field: "status", Operator: "not_equals", Value: "closed"}, "matched", true},
		{"contains", models.Condition{Field: "state", Operator: "contains", Value: "york"}, "New York", true},
		{"contains miss", models.Condition{Field: "state", Operator: "contains", Value: "texas"}, "New York", false},
		{"greater_than", models.Condition{Field: "age", Operator: "greater_than", Value: "21"}, float64(30), true},
		{"greater_than string number", models.Condition{Field: "age", Operator: "greater_than", Value: "21"}, "30", true},
		{"greater_than non-numeric", models.Condition{Field: "age", Operator: "greater_than", Value: "21"}, "unknown", false},
		{"less_than", models.Condition{Field: "age", Operator: "less_than", Value: "21"}, float64(30), false},
		{"is_empty nil", models.Condition{Field: "stage", Operator: "is_empty"}, nil, true},
		{"is_empty blank", models.Condition{Field: "stage", Operator: "is_empty"}, "   ", true},
		{"is_empty value", models.Condition{Field: "stage", Operator: "is_empty"}, "screening", false},
		{"is_not_empty", models.Condition{Field: "stage", Operator: "is_not_empty"}, "screening", true},
		{"is_not_empty nil", models.Condition{Field: "stage", Operator: "is_not_empty"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := evaluator.Evaluate(tt.condition, tt.actual)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestConditionEvaluator_UnsupportedOperator(t *testing.T) {
	t.Parallel()

	evaluator := NewConditionEvaluator()

	result, err := evaluator.Evaluate(models.Condition{Operator: "matches_regex", Value: ".*"}, "x")
	require.Error(t, err)
	assert.False(t, result)
}

func newTestRunFixture(t *testing.T) (*TestRun, persistence.Persistence, *recordingBus) {
	t.Helper()

	p := file.NewPersistence(t.TempDir())
	bus := &recordingBus{}
	service := NewTestRun(p, registry.NewRegistry(testLogger()), bus, testLogger())

	return service, p, bus
}

func TestTestRunService_Run(t *testing.T) {
	t.Parallel()

	service, p, bus := newTestRunFixture(t)

	require.NoError(t, p.TemplateRepository().Save(t.Context(), &models.EmailTemplate{
		ID:   "tpl-1",
		Name: "Welcome packet",
	}))

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Welcome email",
		TriggerType: registry.TriggerTypeCaseCreated,
		Conditions: []models.Condition{
			{Field: "status", Operator: "equals", Value: "new_inquiry"},
			{Field: "age", Operator: "greater_than", Value: "21"},
		},
		ConditionLogic: models.ConditionLogicAnd,
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeSendEmail, TemplateID: "tpl-1"},
			{ActionType: models.ActionTypeCreateTask, Title: "Schedule screening call", RequiresApproval: true},
			{ActionType: models.ActionTypeAddNote, Content: "Auto note"},
		},
	}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), workflow))

	require.NoError(t, p.CaseRepository().SaveSnapshot(t.Context(), &models.CaseSnapshot{
		ID: "case-1",
		Fields: map[string]any{
			"status": "new_inquiry",
			"age":    float64(28),
		},
	}))

	result, err := service.Run(t.Context(), "wf-1", "case-1")
	require.NoError(t, err)

	assert.True(t, result.ConditionsMatched)
	require.Len(t, result.ConditionsEvaluated, 2)
	assert.Equal(t, "status", result.ConditionsEvaluated[0].Field)
	assert.Equal(t, "new_inquiry", result.ConditionsEvaluated[0].Actual)
	assert.True(t, result.ConditionsEvaluated[0].Result)

	require.Len(t, result.ActionsPreview, 3)
	assert.Equal(t, `Send email using template "Welcome packet"`, result.ActionsPreview[0].Description)
	assert.Equal(t, `Create task "Schedule screening call" (requires approval)`, result.ActionsPreview[1].Description)
	assert.Equal(t, "Add a note to the case record", result.ActionsPreview[2].Description)

	require.Len(t, bus.published, 1)
}

func TestTestRunService_OrLogic(t *testing.T) {
	t.Parallel()

	service, p, _ := newTestRunFixture(t)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Escalation",
		TriggerType: registry.TriggerTypeStatusChanged,
		Conditions: []models.Condition{
			{Field: "priority", Operator: "equals", Value: "high"},
			{Field: "status", Operator: "equals", Value: "closed"},
		},
		ConditionLogic: models.ConditionLogicOr,
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeSendNotification, Title: "Escalated"},
		},
	}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), workflow))

	require.NoError(t, p.CaseRepository().SaveSnapshot(t.Context(), &models.CaseSnapshot{
		ID:     "case-1",
		Fields: map[string]any{"priority": "high", "status": "matched"},
	}))

	result, err := service.Run(t.Context(), "wf-1", "case-1")
	require.NoError(t, err)

	assert.True(t, result.ConditionsMatched)
	assert.True(t, result.ConditionsEvaluated[0].Result)
	assert.False(t, result.ConditionsEvaluated[1].Result)
}

func TestTestRunService_EmptyConditionSetMatches(t *testing.T) {
	t.Parallel()

	service, p, _ := newTestRunFixture(t)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Unconditional",
		TriggerType: registry.TriggerTypeCaseCreated,
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeAddNote, Content: "hi"},
		},
	}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), workflow))
	require.NoError(t, p.CaseRepository().SaveSnapshot(t.Context(), &models.CaseSnapshot{
		ID: "case-1", Fields: map[string]any{},
	}))

	result, err := service.Run(t.Context(), "wf-1", "case-1")
	require.NoError(t, err)
	assert.True(t, result.ConditionsMatched)
	assert.Empty(t, result.ConditionsEvaluated)
}

func TestTestRunService_MissingTemplateFallsBackToID(t *testing.T) {
	t.Parallel()

	service, p, _ := newTestRunFixture(t)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "Stale template",
		TriggerType: registry.TriggerTypeCaseCreated,
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeSendEmail, TemplateID: "tpl-gone"},
		},
	}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), workflow))
	require.NoError(t, p.CaseRepository().SaveSnapshot(t.Context(), &models.CaseSnapshot{
		ID: "case-1", Fields: map[string]any{},
	}))

	result, err := service.Run(t.Context(), "wf-1", "case-1")
	require.NoError(t, err)
	assert.Equal(t, `Send email using template "tpl-gone"`, result.ActionsPreview[0].Description)
}

func TestTestRunService_NotFound(t *testing.T) {
	t.Parallel()

	service, p, _ := newTestRunFixture(t)

	_, err := service.Run(t.Context(), "missing", "case-1")
	require.ErrorIs(t, err, ErrWorkflowNotFound)

	workflow := &models.Workflow{
		ID:          "wf-1",
		Name:        "n",
		TriggerType: registry.TriggerTypeCaseCreated,
		Actions:     []models.ActionConfig{{ActionType: models.ActionTypeAddNote, Content: "x"}},
	}
	require.NoError(t, p.WorkflowRepository().Save(t.Context(), workflow))

	_, err = service.Run(t.Context(), "wf-1", "missing-case")
	require.ErrorIs(t, err, ErrCaseNotFound)
}
