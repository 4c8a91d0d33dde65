package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/eventbus"
	"github.com/caseflow/caseflow/pkg/events"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence/file"
	"github.com/caseflow/caseflow/pkg/registry"
)

// recordingBus captures published events for assertions.
type recordingBus struct {
	mu        sync.Mutex
	published []eventbus.Event
}

func (b *recordingBus) Publish(_ context.Context, _ string, event eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.published = append(b.published, event)

	return nil
}

func (b *recordingBus) Handle(_ events.EventType, _ eventbus.EventHandler) error { return nil }
func (b *recordingBus) Subscribe(_ context.Context) error                        { return nil }
func (b *recordingBus) Close() error                                             { return nil }
func (b *recordingBus) GenerateID() string                                       { return "test-id" }

func (b *recordingBus) types() []events.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]events.EventType, 0, len(b.published))
	for _, event := range b.published {
		out = append(out, event.GetType())
	}

	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWorkflowService(t *testing.T) (*Workflow, *recordingBus) {
	t.Helper()

	bus := &recordingBus{}
	service := NewWorkflow(
		file.NewPersistence(t.TempDir()),
		registry.NewRegistry(testLogger()),
		bus,
		testLogger(),
	)

	return service, bus
}

func validDraft() *models.Workflow {
	return &models.Workflow{
		Name:        "Welcome email on intake",
		Description: "Sends the welcome packet when a case is created",
		TriggerType: registry.TriggerTypeCaseCreated,
		TriggerConfig: map[string]any{
			"journey_type": "surrogacy",
		},
		Conditions: []models.Condition{
			{Field: "status", Operator: "equals", Value: "new_inquiry"},
		},
		ConditionLogic: models.ConditionLogicAnd,
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeSendEmail, TemplateID: "tpl-1"},
		},
		IsEnabled: true,
	}
}

func TestWorkflowService_Create(t *testing.T) {
	t.Parallel()

	service, bus := newWorkflowService(t)

	created, err := service.Create(t.Context(), validDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, []events.EventType{events.WorkflowCreatedEvent}, bus.types())

	fetched, err := service.FetchByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome email on intake", fetched.Name)
}

func TestWorkflowService_CreateDefaultsConditionLogic(t *testing.T) {
	t.Parallel()

	service, _ := newWorkflowService(t)

	draft := validDraft()
	draft.ConditionLogic = ""

	created, err := service.Create(t.Context(), draft)
	require.NoError(t, err)
	assert.Equal(t, models.ConditionLogicAnd, created.ConditionLogic)
}

func TestWorkflowService_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.Workflow)
		wantErr error
	}{
		{
			name:    "missing name",
			mutate:  func(w *models.Workflow) { w.Name = "   " },
			wantErr: models.ErrWorkflowNameRequired,
		},
		{
			name:    "missing trigger type",
			mutate:  func(w *models.Workflow) { w.TriggerType = "" },
			wantErr: models.ErrTriggerTypeRequired,
		},
		{
			name:    "no actions",
			mutate:  func(w *models.Workflow) { w.Actions = nil },
			wantErr: models.ErrNoActions,
		},
		{
			name: "email action without template",
			mutate: func(w *models.Workflow) {
				w.Actions = []models.ActionConfig{{ActionType: models.ActionTypeSendEmail}}
			},
			wantErr: models.ErrEmailTemplateRequired,
		},
		{
			name:    "unknown trigger type",
			mutate:  func(w *models.Workflow) { w.TriggerType = "case_archived" },
			wantErr: ErrUnknownTriggerType,
		},
		{
			name: "unknown action type",
			mutate: func(w *models.Workflow) {
				w.Actions = []models.ActionConfig{{ActionType: "escalate", Title: "x"}}
			},
			wantErr: ErrUnknownActionType,
		},
		{
			name: "scheduled trigger without cron",
			mutate: func(w *models.Workflow) {
				w.TriggerType = registry.TriggerTypeScheduled
				w.TriggerConfig = map[string]any{}
			},
			wantErr: ErrInvalidTriggerConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, bus := newWorkflowService(t)

			draft := validDraft()
			tt.mutate(draft)

			_, err := service.Create(t.Context(), draft)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
			assert.Empty(t, bus.types())
		})
	}
}

func TestWorkflowService_UpdateReplacesDraftWholesale(t *testing.T) {
	t.Parallel()

	service, bus := newWorkflowService(t)

	created, err := service.Create(t.Context(), validDraft())
	require.NoError(t, err)

	replacement := validDraft()
	replacement.Name = "Renamed workflow"
	replacement.Conditions = nil
	replacement.Actions = []models.ActionConfig{
		{ActionType: models.ActionTypeAddNote, Content: "Reviewed by coordinator"},
	}

	updated, err := service.Update(t.Context(), created.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Renamed workflow", updated.Name)
	assert.Empty(t, updated.Conditions)
	assert.Equal(t, []events.EventType{events.WorkflowCreatedEvent, events.WorkflowUpdatedEvent}, bus.types())
}

func TestWorkflowService_UpdateMissing(t *testing.T) {
	t.Parallel()

	service, _ := newWorkflowService(t)

	_, err := service.Update(t.Context(), "missing", validDraft())
	require.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestWorkflowService_Delete(t *testing.T) {
	t.Parallel()

	service, bus := newWorkflowService(t)

	created, err := service.Create(t.Context(), validDraft())
	require.NoError(t, err)

	require.NoError(t, service.Delete(t.Context(), created.ID))

	_, err = service.FetchByID(t.Context(), created.ID)
	require.ErrorIs(t, err, ErrWorkflowNotFound)

	assert.Equal(t, []events.EventType{events.WorkflowCreatedEvent, events.WorkflowDeletedEvent}, bus.types())

	require.ErrorIs(t, service.Delete(t.Context(), created.ID), ErrWorkflowNotFound)
}

func TestWorkflowService_ListWorkflows(t *testing.T) {
	t.Parallel()

	service, _ := newWorkflowService(t)

	first := validDraft()
	first.Name = "Alpha"

	second := validDraft()
	second.Name = "Beta"
	second.TriggerType = registry.TriggerTypeStatusChanged
	second.TriggerConfig = map[string]any{"to_status": "matched"}

	for _, draft := range []*models.Workflow{first, second} {
		_, err := service.Create(t.Context(), draft)
		require.NoError(t, err)
	}

	response, err := service.ListWorkflows(t.Context(), ListWorkflowsRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), response.TotalCount)

	response, err = service.ListWorkflows(t.Context(), ListWorkflowsRequest{
		TriggerType: registry.TriggerTypeStatusChanged,
	})
	require.NoError(t, err)
	require.Len(t, response.Workflows, 1)
	assert.Equal(t, "Beta", response.Workflows[0].Name)

	_, err = service.ListWorkflows(t.Context(), ListWorkflowsRequest{SortBy: "trigger_type"})
	require.ErrorIs(t, err, ErrInvalidSortField)

	_, err = service.ListWorkflows(t.Context(), ListWorkflowsRequest{SortOrder: "sideways"})
	require.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestWorkflowService_HealthCheck(t *testing.T) {
	t.Parallel()

	service, _ := newWorkflowService(t)

	message, healthy := service.HealthCheck(t.Context())
	assert.True(t, healthy)
	assert.NotEmpty(t, message)
}
