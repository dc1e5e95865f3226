package service

import (
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// applyFilter keeps the records for which the JMESPath expression evaluates
// to a truthy result. An empty expression keeps everything; an invalid
// expression is a caller error reported as a validation failure.
func applyFilter(jems JMESPathEvaluator, expr string, records []model.Record) ([]model.Record, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return records, nil
	}
	if err := jems.Validate(expr); err != nil {
		return nil, apperrors.Validation("filter", fmt.Sprintf("Invalid filter expression: %v", err))
	}

	kept := make([]model.Record, 0, len(records))
	for _, rec := range records {
		res, err := jems.Evaluate(expr, map[string]any(rec))
		if err != nil {
			return nil, apperrors.Validation("filter", fmt.Sprintf("Invalid filter expression: %v", err))
		}
		if truthy(res) {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// truthy mirrors JMESPath truthiness: null, false, empty string, empty
// array, and empty object are false, everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
