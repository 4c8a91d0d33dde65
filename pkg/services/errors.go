// Package services provides the business logic between the REST surface and
// the persistence layer.
package services

import (
	"errors"
	"fmt"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/caseflow/caseflow/pkg/persistence"
)

// Business logic errors - these indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortOrder     = errors.New("invalid sort order")
	ErrUnknownTriggerType   = errors.New("unknown trigger type")
	ErrUnknownActionType    = errors.New("unknown action type")
	ErrInvalidTriggerConfig = errors.New("invalid trigger configuration")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrWorkflowNil          = errors.New("workflow cannot be nil")
)

// Not-found errors re-exported from persistence so handlers depend on one
// package.
var (
	ErrWorkflowNotFound = persistence.ErrWorkflowNotFound
	ErrTemplateNotFound = persistence.ErrTemplateNotFound
	ErrCaseNotFound     = persistence.ErrCaseNotFound
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should
// return HTTP 400. Draft validation sentinels from the models package count:
// their messages are the product copy shown inline by editors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrUnknownTriggerType) ||
		errors.Is(err, ErrUnknownActionType) ||
		errors.Is(err, ErrInvalidTriggerConfig) ||
		errors.Is(err, ErrTemplateNameRequired) ||
		errors.Is(err, ErrWorkflowNil) ||
		isDraftValidationError(err)
}

func isDraftValidationError(err error) bool {
	return errors.Is(err, models.ErrActionTypeRequired) ||
		errors.Is(err, models.ErrEmailTemplateRequired) ||
		errors.Is(err, models.ErrTaskTitleRequired) ||
		errors.Is(err, models.ErrNotificationTitleRequired) ||
		errors.Is(err, models.ErrNoteContentRequired) ||
		errors.Is(err, models.ErrNoActions) ||
		errors.Is(err, models.ErrWorkflowNameRequired) ||
		errors.Is(err, models.ErrTriggerTypeRequired)
}

// IsNotFoundError checks if an error should return HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrCaseNotFound)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
