package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caseflow/caseflow/pkg/eventbus"
	"github.com/caseflow/caseflow/pkg/events"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
	"github.com/caseflow/caseflow/pkg/registry"
)

// Workflow provides workflow definition CRUD on top of the persistence layer.
type Workflow struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	logger      *slog.Logger
}

// NewWorkflow creates a new workflow service. The event bus may be nil when
// no channel is configured; lifecycle events are then skipped.
func NewWorkflow(
	persistence persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *Workflow {
	return &Workflow{
		persistence: persistence,
		registry:    reg,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// HealthCheck checks the health of the persistence layer.
func (w *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if w.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := w.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListWorkflowsRequest contains options for listing workflows.
type ListWorkflowsRequest struct {
	// Pagination
	Limit  int `validate:"min=1,max=100"`
	Offset int `validate:"min=0"`

	// Filtering
	TriggerType string
	Enabled     *bool

	// Sorting
	SortBy    string `validate:"oneof=created_at updated_at name"`
	SortOrder string `validate:"oneof=asc desc"`
}

// ListWorkflowsResponse contains the result of listing workflows.
type ListWorkflowsResponse struct {
	Workflows   []*models.Workflow `json:"workflows"`
	TotalCount  int64              `json:"total_count"`
	HasNextPage bool               `json:"has_next_page"`
}

// ListWorkflows retrieves workflows with filtering, sorting, and pagination.
func (w *Workflow) ListWorkflows(ctx context.Context, req ListWorkflowsRequest) (*ListWorkflowsResponse, error) {
	if err := w.validateListWorkflowsRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	opts := persistence.ListWorkflowsOptions{
		Limit:       req.Limit,
		Offset:      req.Offset,
		TriggerType: req.TriggerType,
		Enabled:     req.Enabled,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}

	result, err := w.persistence.WorkflowRepository().List(ctx, opts)
	if err != nil {
		if persistence.IsInvalidSortField(err) {
			return nil, ErrInvalidSortField
		}

		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return &ListWorkflowsResponse{
		Workflows:   result.Workflows,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

// validateListWorkflowsRequest validates and sets defaults for the request.
func (w *Workflow) validateListWorkflowsRequest(req *ListWorkflowsRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	allowedSorts := []string{"created_at", "updated_at", "name"}

	if !slices.Contains(allowedSorts, req.SortBy) {
		return NewValidationError(
			"validateListWorkflowsRequest",
			"INVALID_SORT_FIELD",
			fmt.Sprintf("invalid sort field '%s', allowed: %s", req.SortBy, strings.Join(allowedSorts, ", ")),
			ErrInvalidSortField,
		)
	}

	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		return NewValidationError(
			"validateListWorkflowsRequest",
			"INVALID_SORT_ORDER",
			fmt.Sprintf("invalid sort order '%s', allowed: asc, desc", req.SortOrder),
			ErrInvalidSortOrder,
		)
	}

	return nil
}

// FetchByID retrieves a workflow by its ID.
func (w *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	workflow, err := w.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	return workflow, nil
}

// Create adds a new workflow definition. The draft is validated the same way
// the review step validates it, then checked against the trigger registry.
func (w *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if err := w.validateDefinition(workflow); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	workflow.ID = uuid.New().String()
	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if workflow.ConditionLogic == "" {
		workflow.ConditionLogic = models.ConditionLogicAnd
	}

	err := w.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowCreated{
		BaseEvent:   events.NewBaseEvent(events.WorkflowCreatedEvent, workflow.ID),
		Name:        workflow.Name,
		TriggerType: workflow.TriggerType,
	})

	return workflow, nil
}

// Update replaces an existing workflow definition with the submitted draft.
// The draft body wins wholesale; only ID and CreatedAt survive from the
// stored record.
func (w *Workflow) Update(ctx context.Context, workflowID string, workflow *models.Workflow) (*models.Workflow, error) {
	if err := w.validateDefinition(workflow); err != nil {
		return nil, err
	}

	existing, err := w.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, ErrWorkflowNotFound
	}

	workflow.ID = workflowID
	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	if workflow.ConditionLogic == "" {
		workflow.ConditionLogic = models.ConditionLogicAnd
	}

	err = w.persistence.WorkflowRepository().Save(ctx, workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to update workflow: %w", err)
	}

	w.publish(ctx, workflow.ID, events.WorkflowUpdated{
		BaseEvent:   events.NewBaseEvent(events.WorkflowUpdatedEvent, workflow.ID),
		Name:        workflow.Name,
		TriggerType: workflow.TriggerType,
	})

	return workflow, nil
}

// Delete removes a workflow by its ID.
func (w *Workflow) Delete(ctx context.Context, workflowID string) error {
	existing, err := w.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return err
	}

	if existing == nil {
		return ErrWorkflowNotFound
	}

	err = w.persistence.WorkflowRepository().Delete(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}

	w.publish(ctx, workflowID, events.WorkflowDeleted{
		BaseEvent: events.NewBaseEvent(events.WorkflowDeletedEvent, workflowID),
	})

	return nil
}

// validateDefinition runs draft validation plus the registry checks that only
// the server can perform.
func (w *Workflow) validateDefinition(workflow *models.Workflow) error {
	if workflow == nil {
		return ErrWorkflowNil
	}

	if err := models.ValidateWorkflow(workflow); err != nil {
		return err
	}

	if !w.registry.KnownTriggerType(workflow.TriggerType) {
		return NewValidationError(
			"validateDefinition",
			"UNKNOWN_TRIGGER_TYPE",
			fmt.Sprintf("unknown trigger type '%s'", workflow.TriggerType),
			ErrUnknownTriggerType,
		)
	}

	if err := w.registry.ValidateTriggerConfig(workflow.TriggerType, workflow.TriggerConfig); err != nil {
		return NewValidationError(
			"validateDefinition",
			"INVALID_TRIGGER_CONFIG",
			err.Error(),
			ErrInvalidTriggerConfig,
		)
	}

	for _, action := range workflow.Actions {
		if !action.ActionType.Known() {
			return NewValidationError(
				"validateDefinition",
				"UNKNOWN_ACTION_TYPE",
				fmt.Sprintf("unknown action type '%s'", action.ActionType),
				ErrUnknownActionType,
			)
		}
	}

	return nil
}

// publish sends a lifecycle event, logging instead of failing the operation
// when the bus rejects it.
func (w *Workflow) publish(ctx context.Context, key string, event eventbus.Event) {
	if w.eventBus == nil {
		return
	}

	err := w.eventBus.Publish(ctx, key, event)
	if err != nil {
		w.logger.WarnContext(ctx, "failed to publish workflow event",
			"event_type", event.GetType(),
			"workflow_id", key,
			"error", err,
		)
	}
}
