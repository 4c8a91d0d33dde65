package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/registry"
	"github.com/caseflow/caseflow/pkg/wizard"
)

// Trigger step rows. The cron row is present only for the scheduled trigger;
// the enabled toggle is always the last row.
const (
	triggerRowName = iota
	triggerRowDescription
	triggerRowType
	triggerRowCron
)

func (m Model) triggerRowCount() int {
	if m.session.Draft().TriggerType == registry.TriggerTypeScheduled {
		return 5
	}

	return 4
}

// enabledRow is the index of the enabled toggle on the trigger step.
func (m Model) enabledRow() int { return m.triggerRowCount() - 1 }

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textFocus != editNone {
		return m.updateTextEdit(msg)
	}

	switch {
	case key.Matches(msg, keys.Escape):
		// Closing discards silently; only deletes are confirmed.
		m.session.Close()
		m.state = viewList

		return m, nil

	case key.Matches(msg, keys.Next):
		m.session.Next()
		m.fieldCursor = 0

		return m, nil

	case key.Matches(msg, keys.Back):
		m.session.Back()
		m.fieldCursor = 0

		return m, nil
	}

	switch m.session.Step() {
	case wizard.StepTrigger:
		return m.updateTriggerStep(msg)
	case wizard.StepConditions:
		return m.updateConditionsStep(msg)
	case wizard.StepActions:
		return m.updateActionsStep(msg)
	case wizard.StepReview:
		return m.updateReviewStep(msg)
	}

	return m, nil
}

func (m Model) updateTriggerStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.session.Draft()

	switch msg.String() {
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < m.triggerRowCount()-1 {
			m.fieldCursor++
		}
	case "left", "h":
		if m.fieldCursor == triggerRowType {
			m.session.SetTriggerType(cycleOptions(m.triggerTypes(), draft.TriggerType, -1))
		}
	case "right", "l":
		if m.fieldCursor == triggerRowType {
			m.session.SetTriggerType(cycleOptions(m.triggerTypes(), draft.TriggerType, +1))
		}
	case " ":
		if m.fieldCursor == m.enabledRow() {
			m.session.SetEnabled(!draft.IsEnabled)
		}
	case "enter":
		// The enabled toggle shares index 3 with the cron row when the
		// trigger is not scheduled, so it is checked first.
		if m.fieldCursor == m.enabledRow() {
			m.session.SetEnabled(!draft.IsEnabled)

			break
		}

		switch m.fieldCursor {
		case triggerRowName:
			m.startTextEdit(editName, draft.Name, "workflow name")
		case triggerRowDescription:
			m.startTextEdit(editDescription, draft.Description, "optional description")
		case triggerRowCron:
			cron, _ := draft.TriggerConfig["cron"].(string)
			m.startTextEdit(editTriggerCron, cron, "cron expression, e.g. 0 9 * * 1")
		}
	}

	return m, nil
}

func (m Model) updateConditionsStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.session.Draft()

	switch {
	case msg.String() == "up" || msg.String() == "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case msg.String() == "down" || msg.String() == "j":
		if m.fieldCursor < len(draft.Conditions)-1 {
			m.fieldCursor++
		}
	case key.Matches(msg, keys.Add):
		m.session.AddCondition()
		m.fieldCursor = len(draft.Conditions)
	case key.Matches(msg, keys.Delete):
		m.session.RemoveCondition(m.fieldCursor)
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case msg.String() == "f":
		if m.fieldCursor < len(draft.Conditions) {
			field := cycleStrings(m.conditionFields(), draft.Conditions[m.fieldCursor].Field, +1)
			m.session.UpdateCondition(m.fieldCursor, wizard.ConditionPatch{Field: &field})
		}
	case msg.String() == "o":
		if m.fieldCursor < len(draft.Conditions) {
			operator := cycleOptions(m.conditionOperators(), draft.Conditions[m.fieldCursor].Operator, +1)
			m.session.UpdateCondition(m.fieldCursor, wizard.ConditionPatch{Operator: &operator})
		}
	case msg.String() == "l":
		// The AND/OR combinator is shared by the whole set and only
		// meaningful once a second condition exists.
		if m.session.LogicApplicable() {
			m.session.ToggleLogic()
		}
	case msg.String() == "enter":
		if m.fieldCursor < len(draft.Conditions) {
			m.startTextEdit(editConditionValue, draft.Conditions[m.fieldCursor].Value, "comparison value")
		}
	}

	return m, nil
}

func (m Model) updateActionsStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.session.Draft()

	switch {
	case msg.String() == "up" || msg.String() == "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case msg.String() == "down" || msg.String() == "j":
		if m.fieldCursor < len(draft.Actions)-1 {
			m.fieldCursor++
		}
	case key.Matches(msg, keys.Add):
		m.session.AddAction()
		m.fieldCursor = len(draft.Actions)
	case key.Matches(msg, keys.Delete):
		m.session.RemoveAction(m.fieldCursor)
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case key.Matches(msg, keys.Test):
		// Switching the type clears the previous type's fields.
		if m.fieldCursor < len(draft.Actions) {
			next := models.ActionType(cycleOptions(m.actionTypes(), string(draft.Actions[m.fieldCursor].ActionType), +1))
			m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{ActionType: &next})
		}
	case msg.String() == "m":
		if m.fieldCursor < len(draft.Actions) && draft.Actions[m.fieldCursor].ActionType == models.ActionTypeSendEmail {
			templateID := m.cycleTemplates(draft.Actions[m.fieldCursor].TemplateID)
			m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{TemplateID: &templateID})
		}
	case msg.String() == "p":
		if m.fieldCursor < len(draft.Actions) {
			approval := !draft.Actions[m.fieldCursor].RequiresApproval
			m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{RequiresApproval: &approval})
		}
	case msg.String() == "enter":
		if m.fieldCursor >= len(draft.Actions) {
			break
		}

		action := draft.Actions[m.fieldCursor]
		switch action.ActionType {
		case models.ActionTypeCreateTask, models.ActionTypeSendNotification:
			m.startTextEdit(editActionTitle, action.Title, "title")
		case models.ActionTypeAddNote:
			m.startTextEdit(editActionContent, action.Content, "note content")
		case models.ActionTypeSendEmail:
			templateID := m.cycleTemplates(action.TemplateID)
			m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{TemplateID: &templateID})
		}
	}

	return m, nil
}

func (m Model) updateReviewStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Save) {
		// BeginSave rejects in-flight and invalid drafts; the validation
		// message lands in the review banner.
		pending, err := m.session.BeginSave()
		if err != nil {
			return m, nil
		}

		return m, m.dispatchSave(pending)
	}

	return m, nil
}

func (m *Model) startTextEdit(target textTarget, current, placeholder string) {
	m.textFocus = target
	m.textInput.SetValue(current)
	m.textInput.Placeholder = placeholder
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

func (m Model) updateTextEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.textFocus = editNone
		m.textInput.Blur()

		return m, nil
	case "enter":
		m.commitText(m.textInput.Value())
		m.textFocus = editNone
		m.textInput.Blur()

		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

func (m *Model) commitText(value string) {
	switch m.textFocus {
	case editName:
		m.session.SetName(value)
	case editDescription:
		m.session.SetDescription(value)
	case editTriggerCron:
		m.session.SetTriggerConfig("cron", value)
	case editConditionValue:
		m.session.UpdateCondition(m.fieldCursor, wizard.ConditionPatch{Value: &value})
	case editActionTitle:
		m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{Title: &value})
	case editActionContent:
		m.session.UpdateAction(m.fieldCursor, wizard.ActionPatch{Content: &value})
	case editNone:
	}
}

// Option lists come from the server; until they arrive the cycles are no-ops.

func (m Model) triggerTypes() []models.Option {
	if m.options == nil {
		return nil
	}

	return m.options.TriggerTypes
}

func (m Model) conditionFields() []string {
	if m.options == nil {
		return nil
	}

	return m.options.ConditionFields
}

func (m Model) conditionOperators() []models.Option {
	if m.options == nil {
		return nil
	}

	return m.options.ConditionOperators
}

func (m Model) actionTypes() []models.Option {
	if m.options == nil {
		return nil
	}

	return m.options.ActionTypes
}

func (m Model) cycleTemplates(current string) string {
	if m.options == nil || len(m.options.EmailTemplates) == 0 {
		return current
	}

	templates := m.options.EmailTemplates
	for i, template := range templates {
		if template.ID == current {
			return templates[(i+1)%len(templates)].ID
		}
	}

	return templates[0].ID
}

func cycleOptions(options []models.Option, current string, delta int) string {
	if len(options) == 0 {
		return current
	}

	for i, option := range options {
		if option.Value == current {
			return options[(i+len(options)+delta)%len(options)].Value
		}
	}

	return options[0].Value
}

func cycleStrings(values []string, current string, delta int) string {
	if len(values) == 0 {
		return current
	}

	for i, value := range values {
		if value == current {
			return values[(i+len(values)+delta)%len(values)]
		}
	}

	return values[0]
}
