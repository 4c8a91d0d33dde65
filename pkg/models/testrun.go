package models

// ConditionEvaluation is one row of a dry run's condition breakdown.
// Expected is the value the workflow definition asked for; Actual is what the
// case record held at evaluation time.
type ConditionEvaluation struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Expected string `json:"expected"`
	Actual   any    `json:"actual"`
	Result   bool   `json:"result"`
}

// ActionPreview describes what one action would do, without doing it.
type ActionPreview struct {
	ActionType  ActionType `json:"action_type"`
	Description string     `json:"description"`
}

// TestRunResult is the read-only outcome of a workflow dry run against a
// single case record.
type TestRunResult struct {
	ConditionsMatched   bool                  `json:"conditions_matched"`
	ConditionsEvaluated []ConditionEvaluation `json:"conditions_evaluated"`
	ActionsPreview      []ActionPreview       `json:"actions_preview"`
}
