// Package models defines the core domain models for case workflow automation.
package models

import "time"

// ConditionLogic is the single combinator applied across a workflow's whole
// condition set. There is no per-pair nesting and no mixed logic.
type ConditionLogic string

const (
	ConditionLogicAnd ConditionLogic = "AND"
	ConditionLogicOr  ConditionLogic = "OR"
)

// Toggle flips AND to OR and back.
func (l ConditionLogic) Toggle() ConditionLogic {
	if l == ConditionLogicOr {
		return ConditionLogicAnd
	}

	return ConditionLogicOr
}

// DefaultOperator is assigned to newly added conditions.
const DefaultOperator = "equals"

// Condition is a single field/operator/value comparison evaluated against
// the triggering case record. Field and operator values come from the
// server-supplied option lists; value is freeform text in the editor layer
// regardless of the field's real type.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// NewCondition returns the condition shape appended by the editor's
// "add condition" affordance.
func NewCondition() Condition {
	return Condition{Field: "", Operator: DefaultOperator, Value: ""}
}

// ActionType tags an ActionConfig payload.
type ActionType string

const (
	ActionTypeSendEmail        ActionType = "send_email"
	ActionTypeCreateTask       ActionType = "create_task"
	ActionTypeSendNotification ActionType = "send_notification"
	ActionTypeAddNote          ActionType = "add_note"
)

// Known reports whether t is one of the supported action types. The empty
// type is not known; it is a transient editing state only.
func (t ActionType) Known() bool {
	switch t {
	case ActionTypeSendEmail, ActionTypeCreateTask, ActionTypeSendNotification, ActionTypeAddNote:
		return true
	default:
		return false
	}
}

// ActionConfig is one effect a workflow performs when triggered and matched.
// The payload is flat on the wire; which fields are meaningful depends on
// ActionType: TemplateID for send_email, Title for create_task and
// send_notification, Content for add_note. An empty ActionType is valid only
// while editing, never as a save state.
type ActionConfig struct {
	ActionType       ActionType `json:"action_type"`
	TemplateID       string     `json:"template_id,omitempty"`
	Title            string     `json:"title,omitempty"`
	Content          string     `json:"content,omitempty"`
	RequiresApproval bool       `json:"requires_approval,omitempty"`
}

// Workflow is the full editable unit. Create and update requests carry this
// shape verbatim; action order is execution order and must be preserved.
type Workflow struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"            validate:"required"`
	Description    string         `json:"description,omitempty"`
	TriggerType    string         `json:"trigger_type"    validate:"required"`
	TriggerConfig  map[string]any `json:"trigger_config"`
	Conditions     []Condition    `json:"conditions"`
	ConditionLogic ConditionLogic `json:"condition_logic"`
	Actions        []ActionConfig `json:"actions"`
	IsEnabled      bool           `json:"is_enabled"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CaseSnapshot is the flattened field view of a case record, as consumed by
// workflow dry runs. Field values keep the types the case service reported.
type CaseSnapshot struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}
