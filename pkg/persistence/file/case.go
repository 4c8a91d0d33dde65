package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
)

// CaseRepository reads case snapshots used by workflow dry runs.
type CaseRepository struct {
	root string
}

// NewCaseRepository creates a new case snapshot repository.
func NewCaseRepository(root string) *CaseRepository {
	return &CaseRepository{root: root}
}

// Snapshot loads a case snapshot by its ID.
func (cr *CaseRepository) Snapshot(_ context.Context, id string) (*models.CaseSnapshot, error) {
	filePath := filepath.Clean(path.Join(cr.root, "cases", id+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
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

// SaveSnapshot writes a case snapshot to the file system.
func (cr *CaseRepository) SaveSnapshot(_ context.Context, snapshot *models.CaseSnapshot) error {
	err := os.MkdirAll(cr.root+"/cases", 0750)
	if err != nil {
		return fmt.Errorf("failed to create cases directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal case %s: %w", snapshot.ID, err)
	}

	filePath := path.Join(cr.root+"/cases", snapshot.ID+".json")

	return os.WriteFile(filePath, data, 0600)
}
