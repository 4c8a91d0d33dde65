package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	goredis "github.com/redis/go-redis/v9"

	"github.com/caseflow/caseflow/pkg/models"
)

// TemplateRepository handles email template Redis operations.
type TemplateRepository struct {
	client *goredis.Client
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(client *goredis.Client) *TemplateRepository {
	return &TemplateRepository{client: client}
}

// List returns all email templates sorted by name.
func (r *TemplateRepository) List(ctx context.Context) ([]*models.EmailTemplate, error) {
	ids, err := r.client.SMembers(ctx, templateIDSet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list template ids: %w", err)
	}

	templates := make([]*models.EmailTemplate, 0, len(ids))

	for _, id := range ids {
		template, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", id, err)
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

// GetByID retrieves an email template by its ID. A missing key yields
// (nil, nil).
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.EmailTemplate, error) {
	body, err := r.client.Get(ctx, templateKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch template %s: %w", id, err)
	}

	var template models.EmailTemplate

	err = json.Unmarshal(body, &template)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal template %s: %w", id, err)
	}

	return &template, nil
}

// Save writes an email template and registers its ID.
func (r *TemplateRepository) Save(ctx context.Context, template *models.EmailTemplate) error {
	data, err := json.Marshal(template)
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", template.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, templateKeyPrefix+template.ID, data, 0)
	pipe.SAdd(ctx, templateIDSet, template.ID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", template.ID, err)
	}

	return nil
}

// Delete removes an email template by its ID. Deleting a missing template is
// a no-op.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, templateKeyPrefix+id)
	pipe.SRem(ctx, templateIDSet, id)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}

	return nil
}
