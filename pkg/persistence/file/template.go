package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/caseflow/caseflow/pkg/models"
)

// TemplateRepository handles email template file operations.
type TemplateRepository struct {
	root string
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(root string) *TemplateRepository {
	return &TemplateRepository{root: root}
}

// List returns all email templates sorted by name.
func (tr *TemplateRepository) List(ctx context.Context) ([]*models.EmailTemplate, error) {
	root := os.DirFS(tr.root + "/templates")

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}

	templates := make([]*models.EmailTemplate, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		templateID := file[:len(file)-5]

		template, err := tr.GetByID(ctx, templateID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
		}

		if template != nil {
			templates = append(templates, template)
		}
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// GetByID retrieves an email template by its ID. A missing file yields
// (nil, nil).
func (tr *TemplateRepository) GetByID(_ context.Context, templateID string) (*models.EmailTemplate, error) {
	filePath := filepath.Clean(path.Join(tr.root, "templates", templateID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch template %s: %w", templateID, err)
	}

	var template models.EmailTemplate

	err = json.Unmarshal(body, &template)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal template %s: %w", templateID, err)
	}

	return &template, nil
}

// Save writes an email template to the file system.
func (tr *TemplateRepository) Save(_ context.Context, template *models.EmailTemplate) error {
	err := os.MkdirAll(tr.root+"/templates", 0750)
	if err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", template.ID, err)
	}

	filePath := path.Join(tr.root+"/templates", template.ID+".json")

	return os.WriteFile(filePath, data, 0600)
}

// Delete removes an email template by its ID. Deleting a missing template is
// a no-op.
func (tr *TemplateRepository) Delete(_ context.Context, id string) error {
	filePath := path.Join(tr.root+"/templates", id+".json")

	err := os.Remove(filePath)

	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}

	return nil
}
