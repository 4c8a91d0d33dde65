// Package config provides loading for workflow seed files: YAML documents
// that declare email templates and workflow definitions to import in bulk.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caseflow/caseflow/pkg/models"
)

// SeedFile is the structure of a seed YAML document. Templates are imported
// before workflows so send_email actions can reference them by name.
type SeedFile struct {
	Templates []SeedTemplate `yaml:"templates"`
	Workflows []SeedWorkflow `yaml:"workflows"`
}

// SeedTemplate declares one email template to import.
type SeedTemplate struct {
	Name    string `yaml:"name"`
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// SeedWorkflow declares one workflow definition to import.
type SeedWorkflow struct {
	Name           string          `yaml:"name"`
	Description    string          `yaml:"description"`
	TriggerType    string          `yaml:"trigger_type"`
	TriggerConfig  map[string]any  `yaml:"trigger_config"`
	Conditions     []SeedCondition `yaml:"conditions"`
	ConditionLogic string          `yaml:"condition_logic"`
	Actions        []SeedAction    `yaml:"actions"`
	Enabled        bool            `yaml:"enabled"`
}

// SeedCondition declares one field/operator/value comparison.
type SeedCondition struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Value    string `yaml:"value"`
}

// SeedAction declares one action. Template references use the template name;
// the importer resolves it to the created template's id.
type SeedAction struct {
	Type             string `yaml:"type"`
	Template         string `yaml:"template"`
	Title            string `yaml:"title"`
	Content          string `yaml:"content"`
	RequiresApproval bool   `yaml:"requires_approval"`
}

// LoadSeedFile reads and parses a seed YAML file.
func LoadSeedFile(filepath string) (*SeedFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", filepath, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	return &seed, nil
}

// Workflow converts a seed entry to a workflow draft. Template names in
// send_email actions are resolved through templateIDs, mapping template name
// to id; unresolved names are kept verbatim so validation can report them.
func (w SeedWorkflow) Workflow(templateIDs map[string]string) *models.Workflow {
	workflow := &models.Workflow{
		Name:           w.Name,
		Description:    w.Description,
		TriggerType:    w.TriggerType,
		TriggerConfig:  w.TriggerConfig,
		ConditionLogic: models.ConditionLogic(w.ConditionLogic),
		IsEnabled:      w.Enabled,
	}

	if workflow.TriggerConfig == nil {
		workflow.TriggerConfig = map[string]any{}
	}

	workflow.Conditions = make([]models.Condition, 0, len(w.Conditions))
	for _, condition := range w.Conditions {
		workflow.Conditions = append(workflow.Conditions, models.Condition{
			Field:    condition.Field,
			Operator: condition.Operator,
			Value:    condition.Value,
		})
	}

	workflow.Actions = make([]models.ActionConfig, 0, len(w.Actions))
	for _, action := range w.Actions {
		templateID := action.Template
		if id, ok := templateIDs[action.Template]; ok {
			templateID = id
		}

		workflow.Actions = append(workflow.Actions, models.ActionConfig{
			ActionType:       models.ActionType(action.Type),
			TemplateID:       templateID,
			Title:            action.Title,
			Content:          action.Content,
			RequiresApproval: action.RequiresApproval,
		})
	}

	return workflow
}

// Template converts a seed entry to an email template.
func (t SeedTemplate) Template() *models.EmailTemplate {
	return &models.EmailTemplate{
		Name:    t.Name,
		Subject: t.Subject,
		Body:    t.Body,
	}
}
