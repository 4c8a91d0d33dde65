package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersister struct {
	created *models.Workflow
	updated *models.Workflow
	lastID  string
	err     error
}

func (f *fakePersister) Create(_ context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.created = workflow
	saved := *workflow
	saved.ID = "wf-created"

	return &saved, nil
}

func (f *fakePersister) Update(_ context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.updated = workflow
	f.lastID = id
	saved := *workflow
	saved.ID = id

	return &saved, nil
}

func strPtr(s string) *string { return &s }

func actionTypePtr(t models.ActionType) *models.ActionType { return &t }

func TestSession_NextBlockedOnTriggerStep(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()

	session.Next()

	assert.Equal(t, StepTrigger, session.Step())
	assert.Equal(t, "Workflow name is required.", session.ValidationMessage())

	session.SetName("Welcome")
	session.Next()

	assert.Equal(t, StepTrigger, session.Step())
	assert.Equal(t, "Trigger type is required.", session.ValidationMessage())
}

func TestSession_ConditionsAreOptional(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")

	session.Next()
	require.Equal(t, StepConditions, session.Step())
	assert.Empty(t, session.ValidationMessage())

	// No conditions added; step 2 never blocks.
	session.Next()
	require.Equal(t, StepActions, session.Step())

	// No actions added; step 3 blocks.
	session.Next()
	assert.Equal(t, StepActions, session.Step())
	assert.Equal(t, "Add at least one action.", session.ValidationMessage())
}

func TestSession_FullCreateFlow(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")
	session.Next()
	session.Next()

	session.AddAction()
	session.UpdateAction(0, ActionPatch{
		ActionType: actionTypePtr(models.ActionTypeSendEmail),
		TemplateID: strPtr("et-1"),
	})

	session.Next()
	require.Equal(t, StepReview, session.Step())
	assert.Empty(t, session.ReviewMessage())

	persister := &fakePersister{}
	saved, err := session.Save(t.Context(), persister)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "wf-created", saved.ID)
	require.NotNil(t, persister.created)
	assert.Nil(t, persister.updated)

	// Success resets the wizard to its initial closed state.
	assert.False(t, session.IsOpen())
	assert.Equal(t, StepTrigger, session.Step())
	assert.Empty(t, session.Draft().Name)
	assert.Empty(t, session.ValidationMessage())
}

func TestSession_BackClearsValidationMessage(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")
	session.Next()
	session.Next()
	session.Next() // blocked: no actions
	require.NotEmpty(t, session.ValidationMessage())

	session.Back()
	assert.Equal(t, StepConditions, session.Step())
	assert.Empty(t, session.ValidationMessage())

	// Back never goes below the trigger step.
	session.Back()
	session.Back()
	session.Back()
	assert.Equal(t, StepTrigger, session.Step())
}

func TestSession_SaveValidatesBeforeDispatch(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")

	persister := &fakePersister{}
	saved, err := session.Save(t.Context(), persister)

	assert.Nil(t, saved)
	assert.ErrorIs(t, err, models.ErrNoActions)
	assert.Equal(t, "Add at least one action.", session.ValidationMessage())
	assert.Nil(t, persister.created, "no network call on validation failure")
	assert.True(t, session.IsOpen(), "failed save keeps the session open")
}

func TestSession_SaveFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")
	session.AddAction()
	session.UpdateAction(0, ActionPatch{
		ActionType: actionTypePtr(models.ActionTypeAddNote),
		Content:    strPtr("hello"),
	})

	remoteErr := errors.New("boom")
	_, err := session.Save(t.Context(), &fakePersister{err: remoteErr})

	assert.ErrorIs(t, err, remoteErr)
	assert.True(t, session.IsOpen())
	assert.Equal(t, "Welcome", session.Draft().Name, "draft retained for resubmission")
	assert.False(t, session.Saving())
}

func TestSession_SaveDispatchesUpdateWhenEditing(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenEdit("wf-9")
	session.Hydrate(&models.Workflow{
		ID:          "wf-9",
		Name:        "Status follow-up",
		TriggerType: "status_changed",
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeCreateTask, Title: "Review"},
		},
	})

	persister := &fakePersister{}
	saved, err := session.Save(t.Context(), persister)
	require.NoError(t, err)
	assert.Equal(t, "wf-9", saved.ID)
	assert.Equal(t, "wf-9", persister.lastID)
	assert.Nil(t, persister.created)
	require.NotNil(t, persister.updated)
}

func TestSession_SaveOnClosedSession(t *testing.T) {
	t.Parallel()

	session := NewSession()
	_, err := session.Save(t.Context(), &fakePersister{})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_HydrateRunsOncePerEditSession(t *testing.T) {
	t.Parallel()

	record := &models.Workflow{
		ID:             "wf-1",
		Name:           "Original",
		TriggerType:    "case_created",
		ConditionLogic: models.ConditionLogicOr,
		Conditions: []models.Condition{
			{Field: "status", Operator: "equals", Value: "matched"},
		},
		Actions: []models.ActionConfig{
			{ActionType: models.ActionTypeAddNote, Content: "note"},
		},
	}

	session := NewSession()
	session.OpenEdit("wf-1")

	session.Hydrate(record)
	require.Equal(t, "Original", session.Draft().Name)
	assert.True(t, session.Hydrated())

	// Simulated user edit between renders.
	session.SetName("Renamed by user")

	// A re-fetch delivers the record again; it must not clobber the edit.
	session.Hydrate(record)
	assert.Equal(t, "Renamed by user", session.Draft().Name)
}

func TestSession_HydrateIgnoresForeignAndClosedDeliveries(t *testing.T) {
	t.Parallel()

	record := &models.Workflow{ID: "wf-2", Name: "Other"}

	session := NewSession()
	session.OpenEdit("wf-1")
	session.Hydrate(record)
	assert.Empty(t, session.Draft().Name, "record for another id is ignored")

	session.Close()
	session.Hydrate(&models.Workflow{ID: "wf-1", Name: "Late"})
	assert.Empty(t, session.Draft().Name, "closed session ignores deliveries")
}

func TestSession_ReEditAfterCloseRehydrates(t *testing.T) {
	t.Parallel()

	record := &models.Workflow{ID: "wf-1", Name: "Original", TriggerType: "case_created"}

	session := NewSession()
	session.OpenEdit("wf-1")
	session.Hydrate(record)
	session.SetName("Edited")
	session.Close()

	// A later edit of the same workflow hydrates again from scratch.
	session.OpenEdit("wf-1")
	assert.False(t, session.Hydrated())
	session.Hydrate(record)
	assert.Equal(t, "Original", session.Draft().Name)
}

func TestSession_ConditionOperations(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()

	session.AddCondition()
	draft := session.Draft()
	require.Len(t, draft.Conditions, 1)
	assert.Equal(t, "equals", draft.Conditions[0].Operator)
	assert.False(t, session.LogicApplicable(), "logic irrelevant for one condition")

	session.AddCondition()
	assert.True(t, session.LogicApplicable())

	session.UpdateCondition(0, ConditionPatch{Field: strPtr("status"), Value: strPtr("matched")})
	draft = session.Draft()
	assert.Equal(t, "status", draft.Conditions[0].Field)
	assert.Equal(t, "equals", draft.Conditions[0].Operator, "untouched field survives the patch")
	assert.Equal(t, "matched", draft.Conditions[0].Value)
	assert.Empty(t, draft.Conditions[1].Field, "other conditions unchanged")

	// Empty patch is a no-op.
	before := session.Draft()
	session.UpdateCondition(0, ConditionPatch{})
	assert.Equal(t, before.Conditions, session.Draft().Conditions)

	// Out-of-range indexes are no-ops.
	session.RemoveCondition(99)
	session.RemoveCondition(-1)
	session.UpdateCondition(99, ConditionPatch{Field: strPtr("x")})
	assert.Len(t, session.Draft().Conditions, 2)

	session.RemoveCondition(0)
	draft = session.Draft()
	require.Len(t, draft.Conditions, 1)
	assert.Empty(t, draft.Conditions[0].Field)
}

func TestSession_ToggleLogicFlipsSharedValue(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	assert.Equal(t, models.ConditionLogicAnd, session.Draft().ConditionLogic)

	session.ToggleLogic()
	assert.Equal(t, models.ConditionLogicOr, session.Draft().ConditionLogic)

	session.ToggleLogic()
	assert.Equal(t, models.ConditionLogicAnd, session.Draft().ConditionLogic)
}

func TestSession_ActionTypeChangeClearsStaleFields(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.AddAction()

	session.UpdateAction(0, ActionPatch{
		ActionType: actionTypePtr(models.ActionTypeCreateTask),
		Title:      strPtr("Call clinic"),
	})
	session.UpdateAction(0, ActionPatch{RequiresApproval: func() *bool { b := true; return &b }()})

	session.UpdateAction(0, ActionPatch{ActionType: actionTypePtr(models.ActionTypeSendEmail)})

	action := session.Draft().Actions[0]
	assert.Equal(t, models.ActionTypeSendEmail, action.ActionType)
	assert.Empty(t, action.Title, "title from the previous type is cleared")
	assert.True(t, action.RequiresApproval, "approval flag is type-independent")

	// Re-selecting the same type is not a switch and clears nothing.
	session.UpdateAction(0, ActionPatch{TemplateID: strPtr("et-1")})
	session.UpdateAction(0, ActionPatch{ActionType: actionTypePtr(models.ActionTypeSendEmail)})
	assert.Equal(t, "et-1", session.Draft().Actions[0].TemplateID)
}

func TestSession_ActionOrderPreserved(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()

	for i, title := range []string{"first", "second", "third"} {
		session.AddAction()
		session.UpdateAction(i, ActionPatch{
			ActionType: actionTypePtr(models.ActionTypeCreateTask),
			Title:      strPtr(title),
		})
	}

	session.RemoveAction(1)

	actions := session.Draft().Actions
	require.Len(t, actions, 2)
	assert.Equal(t, "first", actions[0].Title)
	assert.Equal(t, "third", actions[1].Title)
}

func openDraftAtReview(t *testing.T) *Session {
	t.Helper()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")
	session.AddAction()
	session.UpdateAction(0, ActionPatch{
		ActionType: actionTypePtr(models.ActionTypeAddNote),
		Content:    strPtr("hello"),
	})

	return session
}

func TestSession_BeginSaveBlocksSecondSave(t *testing.T) {
	t.Parallel()

	session := openDraftAtReview(t)

	pending, err := session.BeginSave()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, session.Saving())

	// One save in flight at a time.
	second, err := session.BeginSave()
	assert.Nil(t, second)
	assert.ErrorIs(t, err, ErrSaveInFlight)

	// A failed dispatch releases the guard and keeps the draft.
	session.FinishSave(errors.New("boom"))
	assert.False(t, session.Saving())
	assert.True(t, session.IsOpen())
	assert.Equal(t, "Welcome", session.Draft().Name)

	_, err = session.BeginSave()
	assert.NoError(t, err)
}

func TestSession_FinishSaveSuccessResets(t *testing.T) {
	t.Parallel()

	session := openDraftAtReview(t)

	pending, err := session.BeginSave()
	require.NoError(t, err)

	persister := &fakePersister{}
	saved, err := pending.Dispatch(t.Context(), persister)
	require.NoError(t, err)
	assert.Equal(t, "wf-created", saved.ID)

	session.FinishSave(nil)
	assert.False(t, session.Saving())
	assert.False(t, session.IsOpen())
	assert.Empty(t, session.Draft().Name)

	// Without a save in flight FinishSave is a no-op.
	session.FinishSave(nil)
	assert.False(t, session.IsOpen())
}

func TestSession_PendingSaveSnapshotDetached(t *testing.T) {
	t.Parallel()

	session := openDraftAtReview(t)

	pending, err := session.BeginSave()
	require.NoError(t, err)

	// Edits made while the dispatch is in flight never reach the wire.
	session.SetName("changed mid-flight")
	session.UpdateAction(0, ActionPatch{Content: strPtr("rewritten")})
	session.AddCondition()

	persister := &fakePersister{}
	_, err = pending.Dispatch(t.Context(), persister)
	require.NoError(t, err)

	require.NotNil(t, persister.created)
	assert.Equal(t, "Welcome", persister.created.Name)
	assert.Equal(t, "hello", persister.created.Actions[0].Content)
	assert.Empty(t, persister.created.Conditions)
}

func TestSession_BeginSaveValidatesBeforeSnapshot(t *testing.T) {
	t.Parallel()

	session := NewSession()
	session.OpenCreate()
	session.SetName("Welcome")
	session.SetTriggerType("case_created")

	pending, err := session.BeginSave()
	assert.Nil(t, pending)
	assert.ErrorIs(t, err, models.ErrNoActions)
	assert.False(t, session.Saving())

	_, err = NewSession().BeginSave()
	assert.ErrorIs(t, err, ErrSessionClosed)
}
