package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		action  ActionConfig
		wantErr error
	}{
		{
			name:    "missing action type",
			action:  ActionConfig{},
			wantErr: ErrActionTypeRequired,
		},
		{
			name:    "send_email without template",
			action:  ActionConfig{ActionType: ActionTypeSendEmail},
			wantErr: ErrEmailTemplateRequired,
		},
		{
			name:   "send_email with template",
			action: ActionConfig{ActionType: ActionTypeSendEmail, TemplateID: "et-1"},
		},
		{
			name:    "create_task without title",
			action:  ActionConfig{ActionType: ActionTypeCreateTask},
			wantErr: ErrTaskTitleRequired,
		},
		{
			name:    "create_task with whitespace title",
			action:  ActionConfig{ActionType: ActionTypeCreateTask, Title: "   "},
			wantErr: ErrTaskTitleRequired,
		},
		{
			name:   "create_task with title",
			action: ActionConfig{ActionType: ActionTypeCreateTask, Title: "Call the clinic"},
		},
		{
			name:    "send_notification without title",
			action:  ActionConfig{ActionType: ActionTypeSendNotification},
			wantErr: ErrNotificationTitleRequired,
		},
		{
			name:   "send_notification with title",
			action: ActionConfig{ActionType: ActionTypeSendNotification, Title: "New match"},
		},
		{
			name:    "add_note without content",
			action:  ActionConfig{ActionType: ActionTypeAddNote},
			wantErr: ErrNoteContentRequired,
		},
		{
			name:   "add_note with content",
			action: ActionConfig{ActionType: ActionTypeAddNote, Content: "Screening passed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAction(tt.action)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateActions(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()

		err := ValidateActions(nil)
		assert.ErrorIs(t, err, ErrNoActions)
		assert.Equal(t, "Add at least one action.", err.Error())
	})

	t.Run("returns first error in list order", func(t *testing.T) {
		t.Parallel()

		actions := []ActionConfig{
			{ActionType: ActionTypeSendEmail, TemplateID: "et-1"},
			{ActionType: ActionTypeCreateTask},
			{ActionType: ActionTypeAddNote},
		}

		err := ValidateActions(actions)
		assert.ErrorIs(t, err, ErrTaskTitleRequired)
	})

	t.Run("all valid", func(t *testing.T) {
		t.Parallel()

		actions := []ActionConfig{
			{ActionType: ActionTypeSendEmail, TemplateID: "et-1"},
			{ActionType: ActionTypeAddNote, Content: "note"},
		}

		assert.NoError(t, ValidateActions(actions))
	})
}

func TestValidateWorkflow(t *testing.T) {
	t.Parallel()

	validActions := []ActionConfig{{ActionType: ActionTypeSendEmail, TemplateID: "et-1"}}

	tests := []struct {
		name     string
		workflow Workflow
		wantErr  error
	}{
		{
			name:     "empty name",
			workflow: Workflow{TriggerType: "case_created", Actions: validActions},
			wantErr:  ErrWorkflowNameRequired,
		},
		{
			name:     "whitespace name",
			workflow: Workflow{Name: "  \t ", TriggerType: "case_created", Actions: validActions},
			wantErr:  ErrWorkflowNameRequired,
		},
		{
			name:     "missing trigger type",
			workflow: Workflow{Name: "Welcome", Actions: validActions},
			wantErr:  ErrTriggerTypeRequired,
		},
		{
			name:     "no actions regardless of other fields",
			workflow: Workflow{Name: "Welcome", TriggerType: "case_created"},
			wantErr:  ErrNoActions,
		},
		{
			name:     "valid",
			workflow: Workflow{Name: "Welcome", TriggerType: "case_created", Actions: validActions},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateWorkflow(&tt.workflow)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
