// Package file provides file-based persistence for workflows, templates,
// and case snapshots. Each record is one JSON document under the root
// directory; it backs local development and the test suite.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/caseflow/caseflow/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the
// file system.
type Persistence struct {
	root         string
	workflowRepo *WorkflowRepository
	templateRepo *TemplateRepository
	caseRepo     *CaseRepository
}

// NewPersistence creates a new instance of Persistence rooted at the given
// directory. A "file://" prefix is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:         cleanRoot,
		workflowRepo: NewWorkflowRepository(cleanRoot),
		templateRepo: NewTemplateRepository(cleanRoot),
		caseRepo:     NewCaseRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence there is
// nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// WorkflowRepository returns the workflow repository implementation.
func (fp *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return fp.workflowRepo
}

// TemplateRepository returns the email template repository implementation.
func (fp *Persistence) TemplateRepository() persistence.TemplateRepository {
	return fp.templateRepo
}

// CaseRepository returns the case snapshot repository implementation.
func (fp *Persistence) CaseRepository() persistence.CaseRepository {
	return fp.caseRepo
}
