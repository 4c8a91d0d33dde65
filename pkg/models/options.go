package models

import "time"

// Option is a value/label pair from a server-supplied enumeration.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TemplateRef is the summary shape of an email template in option lists.
type TemplateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkflowOptions is the payload of GET /workflows/options: everything the
// editor needs to populate its pickers.
type WorkflowOptions struct {
	TriggerTypes       []Option      `json:"trigger_types"`
	Statuses           []Option      `json:"statuses"`
	ConditionFields    []string      `json:"condition_fields"`
	ConditionOperators []Option      `json:"condition_operators"`
	ActionTypes        []Option      `json:"action_types"`
	EmailTemplates     []TemplateRef `json:"email_templates"`
}

// EmailTemplate is a reusable message body referenced by send_email actions.
type EmailTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"    validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
