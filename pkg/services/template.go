package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
)

// Template provides email template CRUD.
type Template struct {
	persistence persistence.Persistence
}

// NewTemplate creates a new template service.
func NewTemplate(persistence persistence.Persistence) *Template {
	return &Template{persistence: persistence}
}

// List returns all email templates.
func (t *Template) List(ctx context.Context) ([]*models.EmailTemplate, error) {
	templates, err := t.persistence.TemplateRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	return templates, nil
}

// FetchByID retrieves an email template by its ID.
func (t *Template) FetchByID(ctx context.Context, id string) (*models.EmailTemplate, error) {
	template, err := t.persistence.TemplateRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if template == nil {
		return nil, ErrTemplateNotFound
	}

	return template, nil
}

// Create adds a new email template.
func (t *Template) Create(ctx context.Context, template *models.EmailTemplate) (*models.EmailTemplate, error) {
	if strings.TrimSpace(template.Name) == "" {
		return nil, ErrTemplateNameRequired
	}

	now := time.Now().UTC()
	template.ID = uuid.New().String()
	template.CreatedAt = now
	template.UpdatedAt = now

	err := t.persistence.TemplateRepository().Save(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return template, nil
}

// Update modifies an existing email template by its ID.
func (t *Template) Update(ctx context.Context, id string, template *models.EmailTemplate) (*models.EmailTemplate, error) {
	if strings.TrimSpace(template.Name) == "" {
		return nil, ErrTemplateNameRequired
	}

	existing, err := t.persistence.TemplateRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, ErrTemplateNotFound
	}

	template.ID = id
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now().UTC()

	err = t.persistence.TemplateRepository().Save(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return template, nil
}

// Delete removes an email template by its ID.
func (t *Template) Delete(ctx context.Context, id string) error {
	existing, err := t.persistence.TemplateRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing == nil {
		return ErrTemplateNotFound
	}

	err = t.persistence.TemplateRepository().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}
