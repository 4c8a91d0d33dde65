// Package web provides HTTP request and response types for the workflow API.
package web

import "github.com/caseflow/caseflow/pkg/models"

// CreateWorkflowRequest is the body of POST /workflows: the full editable
// draft, stored verbatim. Validation messages come from the service layer so
// API consumers and editors show identical copy.
type CreateWorkflowRequest struct {
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	TriggerType    string                `json:"trigger_type"`
	TriggerConfig  map[string]any        `json:"trigger_config"`
	Conditions     []models.Condition    `json:"conditions"`
	ConditionLogic models.ConditionLogic `json:"condition_logic"`
	Actions        []models.ActionConfig `json:"actions"`
	IsEnabled      bool                  `json:"is_enabled"`
}

// UpdateWorkflowRequest is the body of PATCH /workflows/:id. Updates carry
// the full draft and replace the stored definition wholesale.
type UpdateWorkflowRequest = CreateWorkflowRequest

// ToModel converts the request body into the domain shape.
func (r *CreateWorkflowRequest) ToModel() *models.Workflow {
	return &models.Workflow{
		Name:           r.Name,
		Description:    r.Description,
		TriggerType:    r.TriggerType,
		TriggerConfig:  r.TriggerConfig,
		Conditions:     r.Conditions,
		ConditionLogic: r.ConditionLogic,
		Actions:        r.Actions,
		IsEnabled:      r.IsEnabled,
	}
}

// TestWorkflowRequest is the body of POST /workflows/:id/test.
type TestWorkflowRequest struct {
	EntityID string `json:"entity_id" validate:"required"`
}

// TemplateRequest is the body for creating or updating an email template.
type TemplateRequest struct {
	Name    string `json:"name"    validate:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ToModel converts the request body into the domain shape.
func (r *TemplateRequest) ToModel() *models.EmailTemplate {
	return &models.EmailTemplate{
		Name:    r.Name,
		Subject: r.Subject,
		Body:    r.Body,
	}
}
