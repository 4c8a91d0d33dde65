package services

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/caseflow/caseflow/pkg/models"
)

// operatorExpressions maps each condition operator to the expression that
// evaluates it. The environment carries "actual" (the case field value,
// possibly nil) and "expected" (the condition's stored string).
var operatorExpressions = map[string]string{
	"equals":       `string(actual ?? "") == expected`,
	"not_equals":   `string(actual ?? "") != expected`,
	"contains":     `indexOf(lower(string(actual ?? "")), lower(expected)) >= 0`,
	"greater_than": `actual != nil && float(actual) > float(expected)`,
	"less_than":    `actual != nil && float(actual) < float(expected)`,
	"is_empty":     `actual == nil || trim(string(actual)) == ""`,
	"is_not_empty": `actual != nil && trim(string(actual)) != ""`,
}

// ConditionEvaluator evaluates workflow conditions against case field values.
// Compiled programs are cached per operator.
type ConditionEvaluator struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

// NewConditionEvaluator creates an evaluator with an empty program cache.
func NewConditionEvaluator() *ConditionEvaluator {
	return &ConditionEvaluator{
		programs: make(map[string]*vm.Program),
	}
}

// Evaluate runs one condition against the actual field value. A runtime
// failure (non-numeric comparison, unconvertible value) means the condition
// does not match rather than failing the dry run.
func (e *ConditionEvaluator) Evaluate(condition models.Condition, actual any) (bool, error) {
	program, err := e.program(condition.Operator)
	if err != nil {
		return false, err
	}

	output, err := expr.Run(program, map[string]any{
		"actual":   actual,
		"expected": condition.Value,
	})
	if err != nil {
		return false, nil
	}

	result, ok := output.(bool)
	if !ok {
		return false, nil
	}

	return result, nil
}

func (e *ConditionEvaluator) program(operator string) (*vm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[operator]
	e.mu.RUnlock()

	if ok {
		return program, nil
	}

	code, ok := operatorExpressions[operator]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported operator '%s'", ErrInvalidRequest, operator)
	}

	compiled, err := expr.Compile(code, expr.Env(map[string]any{}), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression for operator '%s': %w", operator, err)
	}

	e.mu.Lock()
	e.programs[operator] = compiled
	e.mu.Unlock()

	return compiled, nil
}
