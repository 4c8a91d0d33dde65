package tui

import (
	"fmt"
	"strings"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/wizard"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Caseflow Workflow Editor"))
	b.WriteString("\n\n")

	switch m.state {
	case viewList:
		b.WriteString(m.viewWorkflowList())
	case viewWizard:
		b.WriteString(m.viewWizard())
	case viewConfirmDelete:
		b.WriteString(m.viewConfirmDelete())
	case viewTestPrompt:
		b.WriteString(m.viewTestPrompt())
	case viewTestResult:
		b.WriteString(m.viewTestResult())
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.statusMsg))
	}

	return appStyle.Render(b.String())
}

func (m Model) viewWorkflowList() string {
	var b strings.Builder

	b.WriteString(m.workflowList.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add | enter edit | d delete | t test run | r refresh | / filter | q quit"))

	return b.String()
}

func (m Model) viewWizard() string {
	var b strings.Builder

	b.WriteString(m.viewStepTabs())
	b.WriteString("\n\n")

	switch m.session.Step() {
	case wizard.StepTrigger:
		b.WriteString(m.viewTriggerStep())
	case wizard.StepConditions:
		b.WriteString(m.viewConditionsStep())
	case wizard.StepActions:
		b.WriteString(m.viewActionsStep())
	case wizard.StepReview:
		b.WriteString(m.viewReviewStep())
	}

	if msg := m.session.ValidationMessage(); msg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(msg))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next step | shift+tab back | esc discard"))

	return b.String()
}

func (m Model) viewStepTabs() string {
	steps := []wizard.Step{wizard.StepTrigger, wizard.StepConditions, wizard.StepActions, wizard.StepReview}
	parts := make([]string, 0, len(steps))

	for _, step := range steps {
		label := fmt.Sprintf("%d. %s", step, step)
		if step == m.session.Step() {
			parts = append(parts, activeStepStyle.Render(label))
		} else {
			parts = append(parts, inactiveStepStyle.Render(label))
		}
	}

	mode := "New workflow"
	if m.session.Editing() {
		mode = "Edit workflow"

		if !m.session.Hydrated() {
			mode = "Edit workflow (loading...)"
		}
	}

	return hintStyle.Render(mode) + "\n" + strings.Join(parts, inactiveStepStyle.Render("  >  "))
}

func (m Model) viewTriggerStep() string {
	draft := m.session.Draft()

	enabled := "no"
	if draft.IsEnabled {
		enabled = "yes"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Name", draft.Name},
		{"Description", draft.Description},
		{"Trigger", m.optionLabel(m.triggerTypes(), draft.TriggerType)},
	}

	if m.triggerRowCount() == 5 {
		cron, _ := draft.TriggerConfig["cron"].(string)
		rows = append(rows, struct{ label, value string }{"Schedule (cron)", cron})
	}

	rows = append(rows, struct{ label, value string }{"Enabled", enabled})

	var b strings.Builder

	for i, row := range rows {
		b.WriteString(m.renderRow(i, row.label, row.value))
		b.WriteString("\n")
	}

	if m.textFocus != editNone {
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("up/down move | enter edit | left/right cycle trigger | space toggle enabled"))

	return b.String()
}

func (m Model) viewConditionsStep() string {
	draft := m.session.Draft()

	var b strings.Builder

	if len(draft.Conditions) == 0 {
		b.WriteString(hintStyle.Render("No conditions. The workflow fires for every matching trigger."))
		b.WriteString("\n")
	}

	for i, condition := range draft.Conditions {
		field := condition.Field
		if field == "" {
			field = "(pick a field)"
		}

		value := condition.Value
		if value == "" {
			value = `""`
		}

		line := fmt.Sprintf("%s %s %s", field, m.optionLabel(m.conditionOperators(), condition.Operator), value)
		b.WriteString(m.renderRow(i, fmt.Sprintf("Condition %d", i+1), line))
		b.WriteString("\n")
	}

	// The combinator toggle only appears once it can change anything.
	if m.session.LogicApplicable() {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Match"))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %s of the conditions (l toggles)", draft.ConditionLogic)))
		b.WriteString("\n")
	}

	if m.textFocus != editNone {
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("a add | d delete | f field | o operator | enter value"))

	return b.String()
}

func (m Model) viewActionsStep() string {
	draft := m.session.Draft()

	var b strings.Builder

	if len(draft.Actions) == 0 {
		b.WriteString(warnStyle.Render("No actions yet. At least one is required to save."))
		b.WriteString("\n")
	}

	for i, action := range draft.Actions {
		b.WriteString(m.renderRow(i, fmt.Sprintf("Action %d", i+1), m.describeAction(action)))
		b.WriteString("\n")
	}

	if m.textFocus != editNone {
		b.WriteString("\n")
		b.WriteString(m.textInput.View())
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("a add | d delete | t cycle type | enter edit detail | m template | p approval"))

	return b.String()
}

func (m Model) viewReviewStep() string {
	draft := m.session.Draft()

	var b strings.Builder

	b.WriteString(labelStyle.Render("Name: "))
	b.WriteString(valueStyle.Render(draft.Name))
	b.WriteString("\n")

	if draft.Description != "" {
		b.WriteString(labelStyle.Render("Description: "))
		b.WriteString(valueStyle.Render(draft.Description))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Trigger: "))
	b.WriteString(valueStyle.Render(m.optionLabel(m.triggerTypes(), draft.TriggerType)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render(fmt.Sprintf("Conditions (%s): ", draft.ConditionLogic)))

	if len(draft.Conditions) == 0 {
		b.WriteString(valueStyle.Render("none"))
	}

	b.WriteString("\n")

	for _, condition := range draft.Conditions {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %s %s %q", condition.Field, condition.Operator, condition.Value)))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Actions:"))
	b.WriteString("\n")

	for _, action := range draft.Actions {
		b.WriteString(valueStyle.Render("  " + m.describeAction(action)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if msg := m.session.ReviewMessage(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
	} else if m.session.Saving() {
		b.WriteString(hintStyle.Render("Saving..."))
	} else {
		b.WriteString(okStyle.Render("Ready. Press s to save."))
	}

	return b.String()
}

func (m Model) describeAction(action models.ActionConfig) string {
	var detail string

	switch action.ActionType {
	case models.ActionTypeSendEmail:
		detail = "template " + m.templateName(action.TemplateID)
	case models.ActionTypeCreateTask, models.ActionTypeSendNotification:
		detail = fmt.Sprintf("%q", action.Title)
	case models.ActionTypeAddNote:
		detail = fmt.Sprintf("%q", action.Content)
	default:
		return "(pick a type)"
	}

	line := fmt.Sprintf("%s: %s", m.optionLabel(m.actionTypes(), string(action.ActionType)), detail)
	if action.RequiresApproval {
		line += " [requires approval]"
	}

	return line
}

func (m Model) templateName(id string) string {
	if id == "" {
		return "(none)"
	}

	if m.options != nil {
		for _, template := range m.options.EmailTemplates {
			if template.ID == id {
				return fmt.Sprintf("%q", template.Name)
			}
		}
	}

	return id
}

func (m Model) optionLabel(options []models.Option, value string) string {
	if value == "" {
		return "(none)"
	}

	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}

	return value
}

func (m Model) renderRow(index int, label, value string) string {
	marker := "  "
	if index == m.fieldCursor {
		marker = cursorStyle.Render("> ")
	}

	return marker + labelStyle.Render(label+": ") + valueStyle.Render(value)
}

func (m Model) viewConfirmDelete() string {
	return errorStyle.Render(fmt.Sprintf("Delete workflow %q?", m.pendingDeleteName)) +
		"\n\n" + helpStyle.Render("y confirm | any other key cancel")
}

func (m Model) viewTestPrompt() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render(fmt.Sprintf("Test %q against a case record", m.testTargetName)))
	b.WriteString("\n\n")
	b.WriteString(m.caseInput.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run | esc cancel"))

	return b.String()
}

func (m Model) viewTestResult() string {
	var b strings.Builder

	result := m.testResult
	if result == nil {
		return ""
	}

	if result.ConditionsMatched {
		b.WriteString(okStyle.Render("Conditions matched."))
	} else {
		b.WriteString(warnStyle.Render("Conditions did not match."))
	}

	b.WriteString("\n\n")

	for _, evaluation := range result.ConditionsEvaluated {
		mark := okStyle.Render("ok  ")
		if !evaluation.Result {
			mark = errorStyle.Render("fail")
		}

		b.WriteString(fmt.Sprintf("%s %s %s %q (actual: %v)\n",
			mark, evaluation.Field, evaluation.Operator, evaluation.Expected, evaluation.Actual))
	}

	if len(result.ActionsPreview) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Would run:"))
		b.WriteString("\n")

		for _, preview := range result.ActionsPreview {
			b.WriteString(valueStyle.Render("  " + preview.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("any key to go back"))

	return b.String()
}
