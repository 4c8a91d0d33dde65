package registry

import "github.com/caseflow/caseflow/pkg/models"

// Built-in trigger types.
const (
	TriggerTypeCaseCreated      = "case_created"
	TriggerTypeStatusChanged    = "status_changed"
	TriggerTypeStageChanged     = "stage_changed"
	TriggerTypeMatchProposed    = "match_proposed"
	TriggerTypeDocumentUploaded = "document_uploaded"
	TriggerTypeScheduled        = "scheduled"
)

func defaultTriggerTypes() []models.Option {
	return []models.Option{
		{Value: TriggerTypeCaseCreated, Label: "Case created"},
		{Value: TriggerTypeStatusChanged, Label: "Status changed"},
		{Value: TriggerTypeStageChanged, Label: "Stage changed"},
		{Value: TriggerTypeMatchProposed, Label: "Match proposed"},
		{Value: TriggerTypeDocumentUploaded, Label: "Document uploaded"},
		{Value: TriggerTypeScheduled, Label: "Scheduled"},
	}
}

func defaultStatuses() []models.Option {
	return []models.Option{
		{Value: "new_inquiry", Label: "New inquiry"},
		{Value: "screening", Label: "Screening"},
		{Value: "medical_review", Label: "Medical review"},
		{Value: "matched", Label: "Matched"},
		{Value: "active_journey", Label: "Active journey"},
		{Value: "delivered", Label: "Delivered"},
		{Value: "closed", Label: "Closed"},
	}
}

func defaultConditionFields() []string {
	return []string{
		"status",
		"stage",
		"journey_type",
		"priority",
		"state",
		"age",
		"assigned_coordinator",
	}
}

func defaultConditionOperators() []models.Option {
	return []models.Option{
		{Value: "equals", Label: "Equals"},
		{Value: "not_equals", Label: "Does not equal"},
		{Value: "contains", Label: "Contains"},
		{Value: "greater_than", Label: "Greater than"},
		{Value: "less_than", Label: "Less than"},
		{Value: "is_empty", Label: "Is empty"},
		{Value: "is_not_empty", Label: "Is not empty"},
	}
}

func defaultActionTypes() []models.Option {
	return []models.Option{
		{Value: string(models.ActionTypeSendEmail), Label: "Send email"},
		{Value: string(models.ActionTypeCreateTask), Label: "Create task"},
		{Value: string(models.ActionTypeSendNotification), Label: "Send notification"},
		{Value: string(models.ActionTypeAddNote), Label: "Add note"},
	}
}

// defaultTriggerSchemas maps each trigger type to the JSON Schema its
// trigger_config must satisfy. Unlisted properties are allowed so older
// definitions keep loading.
func defaultTriggerSchemas() map[string]string {
	return map[string]string{
		TriggerTypeCaseCreated: `{
			"type": "object",
			"properties": {
				"journey_type": {"type": "string"}
			}
		}`,
		TriggerTypeStatusChanged: `{
			"type": "object",
			"properties": {
				"from_status": {"type": "string"},
				"to_status": {"type": "string"}
			}
		}`,
		TriggerTypeStageChanged: `{
			"type": "object",
			"properties": {
				"to_stage": {"type": "string"}
			}
		}`,
		TriggerTypeMatchProposed: `{
			"type": "object"
		}`,
		TriggerTypeDocumentUploaded: `{
			"type": "object",
			"properties": {
				"document_type": {"type": "string"}
			}
		}`,
		TriggerTypeScheduled: `{
			"type": "object",
			"properties": {
				"cron": {"type": "string", "minLength": 1}
			},
			"required": ["cron"]
		}`,
	}
}
