// Package registry supplies the enumerations the workflow editor builds its
// pickers from, plus configuration schemas for trigger types.
package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caseflow/caseflow/pkg/models"
	"github.com/robfig/cron/v3"
	"github.com/xeipuuv/gojsonschema"
)

// ErrUnknownTriggerType indicates a trigger type no schema is registered for.
var ErrUnknownTriggerType = errors.New("unknown trigger type")

type Registry struct {
	logger *slog.Logger

	triggerTypes       []models.Option
	statuses           []models.Option
	conditionFields    []string
	conditionOperators []models.Option
	actionTypes        []models.Option

	triggerSchemas map[string]*gojsonschema.Schema
}

// NewRegistry builds a registry with the built-in enumerations and compiled
// trigger-config schemas.
func NewRegistry(logger *slog.Logger) *Registry {
	r := &Registry{
		logger:             logger,
		triggerTypes:       defaultTriggerTypes(),
		statuses:           defaultStatuses(),
		conditionFields:    defaultConditionFields(),
		conditionOperators: defaultConditionOperators(),
		actionTypes:        defaultActionTypes(),
		triggerSchemas:     make(map[string]*gojsonschema.Schema),
	}

	for triggerType, raw := range defaultTriggerSchemas() {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			// Built-in schemas are compiled at startup; a broken one is a
			// programming error, not a runtime condition.
			panic(fmt.Errorf("failed to compile schema for trigger %q: %w", triggerType, err))
		}

		r.triggerSchemas[triggerType] = schema
	}

	return r
}

// TriggerTypes returns the trigger type enumeration.
func (r *Registry) TriggerTypes() []models.Option { return r.triggerTypes }

// Statuses returns the case status enumeration.
func (r *Registry) Statuses() []models.Option { return r.statuses }

// ConditionFields returns the case fields conditions may reference.
func (r *Registry) ConditionFields() []string { return r.conditionFields }

// ConditionOperators returns the comparison operator enumeration.
func (r *Registry) ConditionOperators() []models.Option { return r.conditionOperators }

// ActionTypes returns the action type enumeration.
func (r *Registry) ActionTypes() []models.Option { return r.actionTypes }

// KnownTriggerType reports whether the value is a registered trigger type.
func (r *Registry) KnownTriggerType(value string) bool {
	_, ok := r.triggerSchemas[value]

	return ok
}

// TriggerTypeLabel resolves a trigger type value to its display label. An
// unknown value falls back to the raw value so stale definitions still
// render.
func (r *Registry) TriggerTypeLabel(value string) string {
	return lookupLabel(r.triggerTypes, value)
}

// OperatorLabel resolves an operator value to its display label, falling
// back to the raw value.
func (r *Registry) OperatorLabel(value string) string {
	return lookupLabel(r.conditionOperators, value)
}

// ActionTypeLabel resolves an action type value to its display label,
// falling back to the raw value.
func (r *Registry) ActionTypeLabel(value models.ActionType) string {
	return lookupLabel(r.actionTypes, string(value))
}

// ValidateTriggerConfig checks a trigger configuration against the schema
// registered for its trigger type. Scheduled triggers additionally need a
// parseable cron expression.
func (r *Registry) ValidateTriggerConfig(triggerType string, config map[string]any) error {
	schema, ok := r.triggerSchemas[triggerType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTriggerType, triggerType)
	}

	if config == nil {
		config = map[string]any{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(config))
	if err != nil {
		return fmt.Errorf("failed to validate trigger config: %w", err)
	}

	if !result.Valid() {
		return fmt.Errorf("invalid trigger config for %s: %s", triggerType, result.Errors()[0].String())
	}

	if triggerType == TriggerTypeScheduled {
		expression, _ := config["cron"].(string)
		if _, err := cron.ParseStandard(expression); err != nil {
			return fmt.Errorf("invalid cron expression %q: %w", expression, err)
		}
	}

	return nil
}

// HealthCheck reports whether the registry is usable, for the API health
// endpoint.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.triggerSchemas) == 0 || len(r.actionTypes) == 0 {
		return "Registry has no registered components", false
	}

	return fmt.Sprintf("Registry is healthy (%d trigger types)", len(r.triggerSchemas)), true
}

func lookupLabel(options []models.Option, value string) string {
	for _, option := range options {
		if option.Value == value {
			return option.Label
		}
	}

	return value
}
