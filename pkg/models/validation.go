package models

import (
	"errors"
	"strings"
)

// Validation errors double as the user-facing messages every editor surface
// shows inline, so the strings are fixed here verbatim.
//
//nolint:staticcheck // capitalized, punctuated messages are the product copy
var (
	ErrActionTypeRequired        = errors.New("Select an action type for each action.")
	ErrEmailTemplateRequired     = errors.New("Select an email template for all email actions.")
	ErrTaskTitleRequired         = errors.New("Task actions need a title.")
	ErrNotificationTitleRequired = errors.New("Notification actions need a title.")
	ErrNoteContentRequired       = errors.New("Note actions need content.")
	ErrNoActions                 = errors.New("Add at least one action.")
	ErrWorkflowNameRequired      = errors.New("Workflow name is required.")
	ErrTriggerTypeRequired       = errors.New("Trigger type is required.")
)

// ValidateAction checks a single action for save readiness. A nil return
// means the action is complete for its type.
func ValidateAction(action ActionConfig) error {
	switch action.ActionType {
	case "":
		return ErrActionTypeRequired
	case ActionTypeSendEmail:
		if action.TemplateID == "" {
			return ErrEmailTemplateRequired
		}
	case ActionTypeCreateTask:
		if strings.TrimSpace(action.Title) == "" {
			return ErrTaskTitleRequired
		}
	case ActionTypeSendNotification:
		if strings.TrimSpace(action.Title) == "" {
			return ErrNotificationTitleRequired
		}
	case ActionTypeAddNote:
		if strings.TrimSpace(action.Content) == "" {
			return ErrNoteContentRequired
		}
	}

	return nil
}

// ValidateActions requires at least one action and returns the first
// per-action error in list order.
func ValidateActions(actions []ActionConfig) error {
	if len(actions) == 0 {
		return ErrNoActions
	}

	for _, action := range actions {
		if err := ValidateAction(action); err != nil {
			return err
		}
	}

	return nil
}

// ValidateWorkflow checks the whole draft the way the review step does:
// name, then trigger type, then the action list. Conditions are always
// optional; an empty set matches unconditionally.
func ValidateWorkflow(workflow *Workflow) error {
	if strings.TrimSpace(workflow.Name) == "" {
		return ErrWorkflowNameRequired
	}

	if workflow.TriggerType == "" {
		return ErrTriggerTypeRequired
	}

	return ValidateActions(workflow.Actions)
}
