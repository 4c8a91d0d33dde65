package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
)

// CaseRepository reads case snapshots used by workflow dry runs.
type CaseRepository struct {
	db *sql.DB
}

// NewCaseRepository creates a new case snapshot repository.
func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Snapshot loads a case snapshot by its ID.
func (r *CaseRepository) Snapshot(ctx context.Context, id string) (*models.CaseSnapshot, error) {
	var (
		snapshot   models.CaseSnapshot
		fieldsJSON []byte
	)

	err := r.db.QueryRowContext(ctx, "SELECT id, fields FROM case_snapshots WHERE id = $1", id).
		Scan(&snapshot.ID, &fieldsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrCaseNotFound
		}

		return nil, fmt.Errorf("failed to scan case %s: %w", id, err)
	}

	if fieldsJSON != nil {
		err := json.Unmarshal(fieldsJSON, &snapshot.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal case fields: %w", err)
		}
	}

	return &snapshot, nil
}

// SaveSnapshot upserts a case snapshot.
func (r *CaseRepository) SaveSnapshot(ctx context.Context, snapshot *models.CaseSnapshot) error {
	fieldsJSON, err := json.Marshal(snapshot.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal case fields: %w", err)
	}

	query := `
		INSERT INTO case_snapshots (id, fields, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET
			fields = EXCLUDED.fields,
			updated_at = NOW()
	`

	_, err = r.db.ExecContext(ctx, query, snapshot.ID, fieldsJSON)
	if err != nil {
		return fmt.Errorf("failed to save case %s: %w", snapshot.ID, err)
	}

	return nil
}
