package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/caseflow/caseflow/pkg/eventbus"
	"github.com/caseflow/caseflow/pkg/events"
	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
	"github.com/caseflow/caseflow/pkg/registry"
)

// TestRun performs read-only workflow dry runs: it evaluates the condition
// set against a stored case snapshot and previews the actions without
// executing them. The workflow definition is never mutated.
type TestRun struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	evaluator   *ConditionEvaluator
	eventBus    eventbus.EventBus
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewTestRun creates a new dry-run service.
func NewTestRun(
	persistence persistence.Persistence,
	reg *registry.Registry,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
) *TestRun {
	return &TestRun{
		persistence: persistence,
		registry:    reg,
		evaluator:   NewConditionEvaluator(),
		eventBus:    eventBus,
		logger:      logger,
		tracer:      otel.Tracer("caseflow/services"),
	}
}

// Run evaluates the workflow against the case identified by entityID.
func (s *TestRun) Run(ctx context.Context, workflowID, entityID string) (*models.TestRunResult, error) {
	ctx, span := s.tracer.Start(ctx, "workflow.test_run", trace.WithAttributes(
		attribute.String("workflow.id", workflowID),
		attribute.String("case.id", entityID),
	))
	defer span.End()

	workflow, err := s.persistence.WorkflowRepository().GetByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	if workflow == nil {
		return nil, ErrWorkflowNotFound
	}

	snapshot, err := s.persistence.CaseRepository().Snapshot(ctx, entityID)
	if err != nil {
		return nil, err
	}

	evaluated := make([]models.ConditionEvaluation, 0, len(workflow.Conditions))

	for _, condition := range workflow.Conditions {
		actual := snapshot.Fields[condition.Field]

		result, err := s.evaluator.Evaluate(condition, actual)
		if err != nil {
			s.logger.WarnContext(ctx, "condition evaluation failed",
				"workflow_id", workflowID,
				"field", condition.Field,
				"operator", condition.Operator,
				"error", err,
			)
		}

		evaluated = append(evaluated, models.ConditionEvaluation{
			Field:    condition.Field,
			Operator: condition.Operator,
			Expected: condition.Value,
			Actual:   actual,
			Result:   result,
		})
	}

	matched := combineResults(evaluated, workflow.ConditionLogic)

	preview, err := s.previewActions(ctx, workflow.Actions)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Bool("test.conditions_matched", matched))

	s.publishTested(ctx, workflowID, entityID, matched)

	return &models.TestRunResult{
		ConditionsMatched:   matched,
		ConditionsEvaluated: evaluated,
		ActionsPreview:      preview,
	}, nil
}

// combineResults folds per-condition results with the set's logic. An empty
// set matches unconditionally.
func combineResults(evaluated []models.ConditionEvaluation, logic models.ConditionLogic) bool {
	if len(evaluated) == 0 {
		return true
	}

	if logic == models.ConditionLogicOr {
		for _, evaluation := range evaluated {
			if evaluation.Result {
				return true
			}
		}

		return false
	}

	for _, evaluation := range evaluated {
		if !evaluation.Result {
			return false
		}
	}

	return true
}

// previewActions renders a human description per action. Email actions
// resolve their template name; a missing template falls back to the raw id
// so stale definitions still render.
func (s *TestRun) previewActions(ctx context.Context, actions []models.ActionConfig) ([]models.ActionPreview, error) {
	preview := make([]models.ActionPreview, 0, len(actions))

	for _, action := range actions {
		var description string

		switch action.ActionType {
		case models.ActionTypeSendEmail:
			name := action.TemplateID

			template, err := s.persistence.TemplateRepository().GetByID(ctx, action.TemplateID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve email template: %w", err)
			}

			if template != nil {
				name = template.Name
			}

			description = fmt.Sprintf("Send email using template %q", name)
		case models.ActionTypeCreateTask:
			description = fmt.Sprintf("Create task %q", action.Title)
		case models.ActionTypeSendNotification:
			description = fmt.Sprintf("Send notification %q", action.Title)
		case models.ActionTypeAddNote:
			description = "Add a note to the case record"
		default:
			description = "Unknown action: " + string(action.ActionType)
		}

		if action.RequiresApproval {
			description += " (requires approval)"
		}

		preview = append(preview, models.ActionPreview{
			ActionType:  action.ActionType,
			Description: description,
		})
	}

	return preview, nil
}

func (s *TestRun) publishTested(ctx context.Context, workflowID, entityID string, matched bool) {
	if s.eventBus == nil {
		return
	}

	event := events.WorkflowTested{
		BaseEvent:         events.NewBaseEvent(events.WorkflowTestedEvent, workflowID),
		EntityID:          entityID,
		ConditionsMatched: matched,
	}

	err := s.eventBus.Publish(ctx, workflowID, event)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish workflow.tested event",
			"workflow_id", workflowID,
			"error", err,
		)
	}
}
