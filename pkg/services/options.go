package services

import (
	"context"
	"fmt"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
	"github.com/caseflow/caseflow/pkg/registry"
)

// Options assembles the editor option payload from the registry enumerations
// and the stored email templates.
type Options struct {
	persistence persistence.Persistence
	registry    *registry.Registry
}

// NewOptions creates a new options service.
func NewOptions(persistence persistence.Persistence, reg *registry.Registry) *Options {
	return &Options{persistence: persistence, registry: reg}
}

// Fetch returns everything the workflow editor needs to populate its pickers.
func (o *Options) Fetch(ctx context.Context) (*models.WorkflowOptions, error) {
	templates, err := o.persistence.TemplateRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list email templates: %w", err)
	}

	refs := make([]models.TemplateRef, 0, len(templates))
	for _, template := range templates {
		refs = append(refs, models.TemplateRef{ID: template.ID, Name: template.Name})
	}

	return &models.WorkflowOptions{
		TriggerTypes:       o.registry.TriggerTypes(),
		Statuses:           o.registry.Statuses(),
		ConditionFields:    o.registry.ConditionFields(),
		ConditionOperators: o.registry.ConditionOperators(),
		ActionTypes:        o.registry.ActionTypes(),
		EmailTemplates:     refs,
	}, nil
}
