package wizard

import (
	"github.com/caseflow/caseflow/pkg/models"
)

// ConditionPatch is a partial update for one condition; nil fields leave the
// current value untouched. The empty patch is a no-op.
type ConditionPatch struct {
	Field    *string
	Operator *string
	Value    *string
}

// ActionPatch is a partial update for one action; nil fields leave the
// current value untouched. Changing the action type clears the fields that
// belong to the previous type so stale values never reach the saved payload.
type ActionPatch struct {
	ActionType       *models.ActionType
	TemplateID       *string
	Title            *string
	Content          *string
	RequiresApproval *bool
}

// SetName updates the draft's workflow name.
func (s *Session) SetName(name string) { s.draft.Name = name }

// SetDescription updates the draft's description.
func (s *Session) SetDescription(description string) { s.draft.Description = description }

// SetTriggerType updates the draft's trigger type.
func (s *Session) SetTriggerType(triggerType string) { s.draft.TriggerType = triggerType }

// SetTriggerConfig replaces one key of the trigger configuration.
func (s *Session) SetTriggerConfig(key string, value any) {
	if s.draft.TriggerConfig == nil {
		s.draft.TriggerConfig = map[string]any{}
	}

	s.draft.TriggerConfig[key] = value
}

// SetEnabled updates the draft's enabled flag.
func (s *Session) SetEnabled(enabled bool) { s.draft.IsEnabled = enabled }

// AddCondition appends an empty condition with the default operator.
// It always succeeds.
func (s *Session) AddCondition() {
	s.draft.Conditions = append(s.draft.Conditions, models.NewCondition())
}

// RemoveCondition removes the condition at index; out-of-range indexes are
// a no-op.
func (s *Session) RemoveCondition(index int) {
	if index < 0 || index >= len(s.draft.Conditions) {
		return
	}

	s.draft.Conditions = append(s.draft.Conditions[:index], s.draft.Conditions[index+1:]...)
}

// UpdateCondition merges a partial update into the condition at index,
// leaving the other fields and other conditions unchanged.
func (s *Session) UpdateCondition(index int, patch ConditionPatch) {
	if index < 0 || index >= len(s.draft.Conditions) {
		return
	}

	condition := &s.draft.Conditions[index]

	if patch.Field != nil {
		condition.Field = *patch.Field
	}

	if patch.Operator != nil {
		condition.Operator = *patch.Operator
	}

	if patch.Value != nil {
		condition.Value = *patch.Value
	}
}

// ToggleLogic flips the single AND/OR combinator shared by the whole
// condition set.
func (s *Session) ToggleLogic() {
	s.draft.ConditionLogic = s.draft.ConditionLogic.Toggle()
}

// LogicApplicable reports whether the AND/OR toggle is meaningful: logic is
// irrelevant for zero or one conditions.
func (s *Session) LogicApplicable() bool {
	return len(s.draft.Conditions) > 1
}

// AddAction appends an untyped action. The action stays in the transient
// untyped state until the user picks a type.
func (s *Session) AddAction() {
	s.draft.Actions = append(s.draft.Actions, models.ActionConfig{})
}

// RemoveAction removes the action at index; out-of-range indexes are a no-op.
func (s *Session) RemoveAction(index int) {
	if index < 0 || index >= len(s.draft.Actions) {
		return
	}

	s.draft.Actions = append(s.draft.Actions[:index], s.draft.Actions[index+1:]...)
}

// UpdateAction merges a partial update into the action at index. When the
// patch switches the action type, type-specific fields from the previous
// type are cleared before the rest of the patch applies; the approval flag
// is type-independent and survives the switch.
func (s *Session) UpdateAction(index int, patch ActionPatch) {
	if index < 0 || index >= len(s.draft.Actions) {
		return
	}

	action := &s.draft.Actions[index]

	if patch.ActionType != nil && *patch.ActionType != action.ActionType {
		action.ActionType = *patch.ActionType
		action.TemplateID = ""
		action.Title = ""
		action.Content = ""
	}

	if patch.TemplateID != nil {
		action.TemplateID = *patch.TemplateID
	}

	if patch.Title != nil {
		action.Title = *patch.Title
	}

	if patch.Content != nil {
		action.Content = *patch.Content
	}

	if patch.RequiresApproval != nil {
		action.RequiresApproval = *patch.RequiresApproval
	}
}

// Draft returns a copy of the current draft. Slices are copied so callers
// can render freely while the session keeps ownership of the live state.
func (s *Session) Draft() models.Workflow {
	draft := s.draft
	draft.Conditions = append([]models.Condition(nil), s.draft.Conditions...)
	draft.Actions = append([]models.ActionConfig(nil), s.draft.Actions...)
	draft.TriggerConfig = copyConfig(s.draft.TriggerConfig)

	return draft
}

// Step returns the current wizard step.
func (s *Session) Step() Step { return s.step }

// IsOpen reports whether the editor dialog is open.
func (s *Session) IsOpen() bool { return s.open }

// Editing reports whether the session updates an existing workflow on save.
func (s *Session) Editing() bool { return s.editingWorkflowID != "" }

// EditingWorkflowID returns the id being edited, or empty for a create
// session.
func (s *Session) EditingWorkflowID() string { return s.editingWorkflowID }

// Hydrated reports whether the edited record has been copied into the draft.
func (s *Session) Hydrated() bool {
	return s.editingWorkflowID != "" && s.hydratedWorkflowID == s.editingWorkflowID
}

// Saving reports whether a save is in flight; the save affordance is
// disabled while it is.
func (s *Session) Saving() bool { return s.saving }

// ValidationMessage returns the single visible validation message, or empty
// when the latest attempted transition validated cleanly.
func (s *Session) ValidationMessage() string {
	if s.validationErr == nil {
		return ""
	}

	return s.validationErr.Error()
}

// ReviewMessage reports the continuous whole-draft readiness check shown on
// the review step, independent of the last attempted transition.
func (s *Session) ReviewMessage() string {
	if err := models.ValidateWorkflow(&s.draft); err != nil {
		return err.Error()
	}

	return ""
}
