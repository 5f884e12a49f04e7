package service

import (
	"fmt"

	"github.com/ontiq/ontoscope/internal/domain"
)

// EvaluateConditions checks a condition list against a definition and its
// edges. AllMet is the conjunction of every per-condition result; an empty
// list is vacuously true. A condition whose operator does not match a known
// case for its shape evaluates to met=false: malformed never means
// satisfied.
func EvaluateConditions(conditions []domain.Condition, def domain.Definition, edges []domain.Edge) domain.ConditionEvaluation {
	eval := domain.ConditionEvaluation{
		AllMet:  true,
		Results: make([]domain.ConditionResult, 0, len(conditions)),
	}

	for _, c := range conditions {
		var result domain.ConditionResult
		if c.IsEdgeCondition() {
			result = evaluateEdgeCondition(c, def.ID, edges)
		} else {
			result = evaluatePropertyCondition(c, def)
		}
		if !result.Met {
			eval.AllMet = false
		}
		eval.Results = append(eval.Results, result)
	}

	return eval
}

func evaluatePropertyCondition(c domain.Condition, def domain.Definition) domain.ConditionResult {
	actual, _ := propertyValue(def, c.Property)

	met := false
	switch c.Operator {
	case domain.OpEqual:
		met = scalarEqual(actual, c.Value)
	case domain.OpNotEqual:
		met = !scalarEqual(actual, c.Value)
	case domain.OpIn:
		met = scalarIn(actual, c.Value)
	}

	return domain.ConditionResult{Condition: c, Met: met, Actual: actual}
}

func evaluateEdgeCondition(c domain.Condition, definitionID string, edges []domain.Edge) domain.ConditionResult {
	direction := c.Direction
	if direction == "" {
		direction = domain.DirectionEither
	}
	count := domain.CountEdges(definitionID, edges, c.Edge, direction)

	met := false
	switch c.Operator {
	case domain.OpEqual:
		met = count == c.Count
	case domain.OpGreater:
		met = count > c.Count
	case domain.OpLess:
		met = count < c.Count
	}

	return domain.ConditionResult{Condition: c, Met: met, Actual: count}
}

// propertyValue resolves a condition's property against the definition's
// declared fields first, then the free-form values map, then the
// eo-namespaced key the cataloging layer writes for custom properties.
func propertyValue(def domain.Definition, property string) (any, bool) {
	switch property {
	case "stability":
		if def.Stability != "" {
			return string(def.Stability), true
		}
	case "authority":
		if def.Authority != "" {
			return string(def.Authority), true
		}
	case "time":
		if def.Time != "" {
			return string(def.Time), true
		}
	case "id":
		return def.ID, true
	}
	if def.Values != nil {
		if v, ok := def.Values[property]; ok {
			return v, true
		}
		if v, ok := def.Values["eo:"+property]; ok {
			return v, true
		}
	}
	return nil, false
}

// scalarEqual compares two loosely typed scalars. Values arriving through
// JSON decode to string or float64; comparing their canonical string forms
// keeps 3 == 3.0 while staying deterministic.
func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func scalarIn(actual, value any) bool {
	switch members := value.(type) {
	case []any:
		for _, m := range members {
			if scalarEqual(actual, m) {
				return true
			}
		}
	case []string:
		for _, m := range members {
			if scalarEqual(actual, m) {
				return true
			}
		}
	}
	return false
}
