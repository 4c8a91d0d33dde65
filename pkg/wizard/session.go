// Package wizard implements the four-step workflow editor session: a draft
// container with forward validation gating, free backward navigation, and a
// one-shot hydration bridge for edit mode.
package wizard

import (
	"context"
	"errors"
	"strings"

	"github.com/caseflow/caseflow/pkg/models"
)

// Step identifies one of the editor's four screens.
type Step int

const (
	StepTrigger Step = iota + 1
	StepConditions
	StepActions
	StepReview
)

// String returns the screen title for a step.
func (s Step) String() string {
	switch s {
	case StepTrigger:
		return "Trigger"
	case StepConditions:
		return "Conditions"
	case StepActions:
		return "Actions"
	case StepReview:
		return "Review"
	default:
		return "Unknown"
	}
}

// Persister is the workflow-persistence collaborator the session saves
// through. Remote failures are returned untouched; the session keeps its
// draft so the user can correct and resubmit.
type Persister interface {
	Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error)
	Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error)
}

var (
	// ErrSessionClosed is returned when Save is called on a closed session.
	ErrSessionClosed = errors.New("editor session is closed")

	// ErrSaveInFlight is returned when Save is called while a previous save
	// for the same session has not finished.
	ErrSaveInFlight = errors.New("a save is already in flight")
)

// Session owns exactly one draft workflow and the wizard state around it.
// It is not safe for concurrent use: the editor's event loop owns it
// exclusively. Saves that must leave the loop go through BeginSave, which
// hands out a detached PendingSave snapshot; only the snapshot crosses
// goroutines.
type Session struct {
	draft         models.Workflow
	step          Step
	open          bool
	validationErr error

	// editingWorkflowID is set while editing an existing workflow;
	// hydratedWorkflowID records which record has already been copied into
	// the draft so re-fetches never clobber in-progress edits.
	editingWorkflowID  string
	hydratedWorkflowID string

	saving bool
}

// NewSession returns a closed session with an empty draft.
func NewSession() *Session {
	s := &Session{}
	s.reset()

	return s
}

// OpenCreate starts a fresh draft at the trigger step.
func (s *Session) OpenCreate() {
	s.reset()
	s.open = true
}

// OpenEdit starts an edit session for the given workflow id at the trigger
// step. The draft stays empty until Hydrate delivers the fetched record.
func (s *Session) OpenEdit(id string) {
	s.reset()
	s.editingWorkflowID = id
	s.open = true
}

// Close discards all in-progress edits with no persistence.
func (s *Session) Close() {
	s.reset()
}

// Hydrate copies the fetched record into the draft, exactly once per edit
// session. Records for a different id, repeated deliveries, and deliveries
// on a closed session are all ignored.
func (s *Session) Hydrate(record *models.Workflow) {
	if !s.open || record == nil || s.editingWorkflowID == "" {
		return
	}

	if record.ID != s.editingWorkflowID || s.hydratedWorkflowID == s.editingWorkflowID {
		return
	}

	s.draft.Name = record.Name
	s.draft.Description = record.Description
	s.draft.TriggerType = record.TriggerType
	s.draft.TriggerConfig = copyConfig(record.TriggerConfig)
	s.draft.Conditions = append([]models.Condition(nil), record.Conditions...)
	s.draft.Actions = append([]models.ActionConfig(nil), record.Actions...)
	s.draft.IsEnabled = record.IsEnabled

	if record.ConditionLogic != "" {
		s.draft.ConditionLogic = record.ConditionLogic
	}

	s.hydratedWorkflowID = s.editingWorkflowID
}

// Next advances from steps 1-3 when the current step validates, otherwise it
// records the validation message and stays put. It does nothing on the
// review step; leaving review forward is Save's job.
func (s *Session) Next() {
	if !s.open || s.step >= StepReview {
		return
	}

	if err := s.stepValidationError(s.step); err != nil {
		s.validationErr = err

		return
	}

	s.validationErr = nil
	s.step++
}

// Back always clears the validation message and moves one step back.
func (s *Session) Back() {
	if !s.open || s.step <= StepTrigger {
		return
	}

	s.validationErr = nil
	s.step--
}

// PendingSave is a validated draft snapshot detached from its session. It
// carries everything Dispatch needs, so the network call can run on another
// goroutine while the session stays with the event loop.
type PendingSave struct {
	draft      models.Workflow
	workflowID string
}

// Draft returns the snapshot that will be sent.
func (p *PendingSave) Draft() models.Workflow { return p.draft }

// Dispatch performs the create or update, keyed on whether the snapshot was
// taken from an edit session. It touches no session state.
func (p *PendingSave) Dispatch(ctx context.Context, persister Persister) (*models.Workflow, error) {
	draft := p.draft

	if p.workflowID != "" {
		return persister.Update(ctx, p.workflowID, &draft)
	}

	return persister.Create(ctx, &draft)
}

// BeginSave validates the whole draft and marks a save in flight. Validation
// failures are local: the message is recorded and no snapshot is handed out.
// The caller dispatches the returned snapshot and reports the outcome with
// FinishSave; until then further BeginSave calls return ErrSaveInFlight.
func (s *Session) BeginSave() (*PendingSave, error) {
	if !s.open {
		return nil, ErrSessionClosed
	}

	if s.saving {
		return nil, ErrSaveInFlight
	}

	if err := models.ValidateWorkflow(&s.draft); err != nil {
		s.validationErr = err

		return nil, err
	}

	s.validationErr = nil
	s.saving = true

	return &PendingSave{draft: s.Draft(), workflowID: s.editingWorkflowID}, nil
}

// FinishSave records the outcome of a dispatched save. Success resets the
// session to its initial closed state; failure keeps the draft so the user
// can correct and resubmit. Without a save in flight it is a no-op.
func (s *Session) FinishSave(err error) {
	if !s.saving {
		return
	}

	s.saving = false

	if err == nil {
		s.reset()
	}
}

// Save validates, dispatches, and records the outcome in one synchronous
// call, for callers that do not need to leave their goroutine.
func (s *Session) Save(ctx context.Context, persister Persister) (*models.Workflow, error) {
	pending, err := s.BeginSave()
	if err != nil {
		return nil, err
	}

	saved, err := pending.Dispatch(ctx, persister)
	s.FinishSave(err)

	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (s *Session) stepValidationError(step Step) error {
	switch step {
	case StepTrigger:
		if strings.TrimSpace(s.draft.Name) == "" {
			return models.ErrWorkflowNameRequired
		}

		if s.draft.TriggerType == "" {
			return models.ErrTriggerTypeRequired
		}
	case StepActions:
		return models.ValidateActions(s.draft.Actions)
	case StepConditions, StepReview:
		// Conditions are always optional; review is a read-only summary.
	}

	return nil
}

func (s *Session) reset() {
	s.resetDraft()
	s.step = StepTrigger
	s.open = false
	s.validationErr = nil
	s.editingWorkflowID = ""
	s.hydratedWorkflowID = ""
}

func (s *Session) resetDraft() {
	s.draft = models.Workflow{
		TriggerConfig:  map[string]any{},
		Conditions:     []models.Condition{},
		ConditionLogic: models.ConditionLogicAnd,
		Actions:        []models.ActionConfig{},
	}
}

func copyConfig(config map[string]any) map[string]any {
	copied := make(map[string]any, len(config))
	for key, value := range config {
		copied[key] = value
	}

	return copied
}
