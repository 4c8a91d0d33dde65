package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseflow/caseflow/pkg/config"
	"github.com/caseflow/caseflow/pkg/models"
)

const sampleSeed = `
templates:
  - name: Welcome packet
    subject: Welcome to the program
    body: Hello {{first_name}},

workflows:
  - name: Welcome email on intake
    description: Greets new intended parents
    trigger_type: case_created
    condition_logic: AND
    conditions:
      - field: journey_type
        operator: equals
        value: surrogacy
    actions:
      - type: send_email
        template: Welcome packet
      - type: create_task
        title: Schedule screening call
        requires_approval: true
    enabled: true
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	seed, err := config.LoadSeedFile(writeSeed(t, sampleSeed))
	require.NoError(t, err)

	require.Len(t, seed.Templates, 1)
	assert.Equal(t, "Welcome packet", seed.Templates[0].Name)

	require.Len(t, seed.Workflows, 1)
	assert.Equal(t, "case_created", seed.Workflows[0].TriggerType)
	assert.Len(t, seed.Workflows[0].Actions, 2)
}

func TestLoadSeedFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSeedFile_BadYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadSeedFile(writeSeed(t, "workflows: {not: [a, list"))
	assert.Error(t, err)
}

func TestSeedWorkflow_ResolvesTemplateNames(t *testing.T) {
	t.Parallel()

	seed, err := config.LoadSeedFile(writeSeed(t, sampleSeed))
	require.NoError(t, err)

	workflow := seed.Workflows[0].Workflow(map[string]string{"Welcome packet": "tpl-42"})

	require.Len(t, workflow.Actions, 2)
	assert.Equal(t, models.ActionTypeSendEmail, workflow.Actions[0].ActionType)
	assert.Equal(t, "tpl-42", workflow.Actions[0].TemplateID)
	assert.Equal(t, models.ActionTypeCreateTask, workflow.Actions[1].ActionType)
	assert.Equal(t, "Schedule screening call", workflow.Actions[1].Title)
	assert.True(t, workflow.Actions[1].RequiresApproval)
	assert.Equal(t, models.ConditionLogicAnd, workflow.ConditionLogic)
	assert.True(t, workflow.IsEnabled)
}

func TestSeedWorkflow_UnresolvedTemplateKeptVerbatim(t *testing.T) {
	t.Parallel()

	seed, err := config.LoadSeedFile(writeSeed(t, sampleSeed))
	require.NoError(t, err)

	workflow := seed.Workflows[0].Workflow(nil)
	assert.Equal(t, "Welcome packet", workflow.Actions[0].TemplateID)
}
