package visibility

import (
	"errors"
	"strings"

	"github.com/goliatone/go-adminview/pkg/model"
)

// ErrNoEvaluator is returned when a rule must be evaluated but no evaluator
// was configured.
var ErrNoEvaluator = errors.New("visibility: no evaluator configured")

// Evaluator decides whether a condition rule holds for an item.
type Evaluator interface {
	Eval(rule string, item model.Item) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, item model.Item) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, item model.Item) (bool, error) {
	return fn(rule, item)
}

// Check evaluates rule against item. An empty rule is always visible; an
// evaluation error hides the element and is returned for logging.
func Check(eval Evaluator, rule string, item model.Item) (bool, error) {
	if strings.TrimSpace(rule) == "" {
		return true, nil
	}
	if eval == nil {
		return false, ErrNoEvaluator
	}
	ok, err := eval.Eval(rule, item)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Visible is Check without the error.
func Visible(eval Evaluator, rule string, item model.Item) bool {
	ok, _ := Check(eval, rule, item)
	return ok
}
