// Package persistence provides the data storage abstraction for workflows,
// email templates, and case snapshots.
package persistence

import (
	"context"
	"sort"

	"github.com/caseflow/caseflow/pkg/models"
)

type Persistence interface {
	WorkflowRepository() WorkflowRepository
	TemplateRepository() TemplateRepository
	CaseRepository() CaseRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// WorkflowRepository stores workflow definitions. GetByID returns (nil, nil)
// when no workflow exists for the id; callers translate that to a not-found
// error at their own boundary.
type WorkflowRepository interface {
	List(ctx context.Context, opts ListWorkflowsOptions) (*WorkflowListResult, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// TemplateRepository stores email templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]*models.EmailTemplate, error)
	GetByID(ctx context.Context, id string) (*models.EmailTemplate, error)
	Save(ctx context.Context, template *models.EmailTemplate) error
	Delete(ctx context.Context, id string) error
}

// CaseRepository exposes the case-record snapshots dry runs evaluate
// conditions against.
type CaseRepository interface {
	Snapshot(ctx context.Context, id string) (*models.CaseSnapshot, error)
	SaveSnapshot(ctx context.Context, snapshot *models.CaseSnapshot) error
}

// ListWorkflowsOptions controls filtering, sorting, and pagination of
// workflow listings.
type ListWorkflowsOptions struct {
	Limit  int
	Offset int

	TriggerType string
	Enabled     *bool

	SortBy    string
	SortOrder string
}

// WorkflowListResult is one page of a workflow listing.
type WorkflowListResult struct {
	Workflows   []*models.Workflow
	TotalCount  int64
	HasNextPage bool
}

// ApplyListOptions filters, sorts, and paginates an in-memory workflow slice.
// Backends without server-side querying (file, redis) share it. The sort
// field must already be allowlisted by the caller.
func ApplyListOptions(workflows []*models.Workflow, opts ListWorkflowsOptions) *WorkflowListResult {
	filtered := make([]*models.Workflow, 0, len(workflows))

	for _, workflow := range workflows {
		if opts.TriggerType != "" && workflow.TriggerType != opts.TriggerType {
			continue
		}

		if opts.Enabled != nil && workflow.IsEnabled != *opts.Enabled {
			continue
		}

		filtered = append(filtered, workflow)
	}

	sortWorkflows(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))

	start := opts.Offset
	if start > len(filtered) {
		start = len(filtered)
	}

	end := start + opts.Limit
	if opts.Limit <= 0 || end > len(filtered) {
		end = len(filtered)
	}

	return &WorkflowListResult{
		Workflows:   filtered[start:end],
		TotalCount:  totalCount,
		HasNextPage: end < len(filtered),
	}
}

func sortWorkflows(workflows []*models.Workflow, sortBy, sortOrder string) {
	sort.SliceStable(workflows, func(i, j int) bool {
		var less bool

		switch sortBy {
		case "updated_at":
			less = workflows[i].UpdatedAt.Before(workflows[j].UpdatedAt)
		case "name":
			less = workflows[i].Name < workflows[j].Name
		default:
			less = workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
		}

		if sortOrder == "desc" {
			return !less
		}

		return less
	})
}
