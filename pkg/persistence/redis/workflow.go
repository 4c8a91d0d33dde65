package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
)

// WorkflowRepository handles workflow-related Redis operations.
type WorkflowRepository struct {
	client *goredis.Client
}

// NewWorkflowRepository creates a new workflow repository.
func NewWorkflowRepository(client *goredis.Client) *WorkflowRepository {
	return &WorkflowRepository{client: client}
}

var allowedWorkflowSorts = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// List returns paginated and filtered workflows with in-memory operations.
func (r *WorkflowRepository) List(ctx context.Context, opts persistence.ListWorkflowsOptions) (*persistence.WorkflowListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	if !allowedWorkflowSorts[opts.SortBy] {
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	ids, err := r.client.SMembers(ctx, workflowIDSet).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow ids: %w", err)
	}

	workflows := make([]*models.Workflow, 0, len(ids))

	for _, id := range ids {
		workflow, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow %s: %w", id, err)
		}

		if workflow != nil {
			workflows = append(workflows, workflow)
		}
	}

	return persistence.ApplyListOptions(workflows, opts), nil
}

// GetByID retrieves a workflow by its ID. A missing key yields (nil, nil).
func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	body, err := r.client.Get(ctx, workflowKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch workflow %s: %w", id, err)
	}

	var workflow models.Workflow

	err = json.Unmarshal(body, &workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow %s: %w", id, err)
	}

	return &workflow, nil
}

// Save writes a workflow and registers its ID.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	data, err := json.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow %s: %w", workflow.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, workflowKeyPrefix+workflow.ID, data, 0)
	pipe.SAdd(ctx, workflowIDSet, workflow.ID)

	_, err = pipe.Exec(ctx)
	if err != nil {
		return persistence.NewWorkflowError("Save", workflow.ID, err)
	}

	return nil
}

// Delete removes a workflow by its ID. Deleting a missing workflow is a
// no-op.
func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, workflowKeyPrefix+id)
	pipe.SRem(ctx, workflowIDSet, id)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return persistence.NewWorkflowError("Delete", id, err)
	}

	return nil
}
