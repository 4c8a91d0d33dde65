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

// CaseRepository reads case snapshots used by workflow dry runs.
type CaseRepository struct {
	client *goredis.Client
}

// NewCaseRepository creates a new case snapshot repository.
func NewCaseRepository(client *goredis.Client) *CaseRepository {
	return &CaseRepository{client: client}
}

// Snapshot loads a case snapshot by its ID.
func (r *CaseRepository) Snapshot(ctx context.Context, id string) (*models.CaseSnapshot, error) {
	body, err := r.client.Get(ctx, caseKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, persistence.ErrCaseNotFound
		}

		return nil, fmt.Errorf("failed to fetch case %s: %w", id, err)
	}

	var snapshot models.CaseSnapshot

	err = json.Unmarshal(body, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal case %s: %w", id, err)
	}

	return &snapshot, nil
}

// SaveSnapshot writes a case snapshot.
func (r *CaseRepository) SaveSnapshot(ctx context.Context, snapshot *models.CaseSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal case %s: %w", snapshot.ID, err)
	}

	err = r.client.Set(ctx, caseKeyPrefix+snapshot.ID, data, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to save case %s: %w", snapshot.ID, err)
	}

	return nil
}
