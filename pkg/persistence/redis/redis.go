// Package redis provides Redis-backed persistence for workflows, email
// templates, and case snapshots. Records are stored as JSON blobs with a
// set per collection tracking known IDs.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/caseflow/caseflow/pkg/persistence"
)

const (
	workflowKeyPrefix = "caseflow:workflows:"
	workflowIDSet     = "caseflow:workflows"
	templateKeyPrefix = "caseflow:templates:"
	templateIDSet     = "caseflow:templates"
	caseKeyPrefix     = "caseflow:cases:"
)

// Persistence implements the persistence layer for Redis.
type Persistence struct {
	client       *goredis.Client
	workflowRepo *WorkflowRepository
	templateRepo *TemplateRepository
	caseRepo     *CaseRepository
}

// NewPersistence creates a new Redis persistence layer from a redis:// URL.
func NewPersistence(ctx context.Context, redisURL string) (*Persistence, error) {
	options, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(options)

	err = client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Persistence{
		client:       client,
		workflowRepo: NewWorkflowRepository(client),
		templateRepo: NewTemplateRepository(client),
		caseRepo:     NewCaseRepository(client),
	}, nil
}

// Close closes the Redis client.
func (p *Persistence) Close(_ context.Context) error {
	err := p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// HealthCheck verifies the Redis connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// WorkflowRepository returns the workflow repository implementation.
func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

// TemplateRepository returns the email template repository implementation.
func (p *Persistence) TemplateRepository() persistence.TemplateRepository {
	return p.templateRepo
}

// CaseRepository returns the case snapshot repository implementation.
func (p *Persistence) CaseRepository() persistence.CaseRepository {
	return p.caseRepo
}
