package domain

import (
	"fmt"
	"time"
)

// ValidationError marks a construction failure: malformed top-level input
// rejected at the boundary, as opposed to a storage or runtime failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Role is a named region in the behavior-vector space. Holon, protogon and
// emanon have canonical prototypes; mixed is the classifier's fallback when
// a profile sits too far from every prototype.
type Role string

const (
	RoleHolon    Role = "holon"
	RoleProtogon Role = "protogon"
	RoleEmanon   Role = "emanon"
	RoleMixed    Role = "mixed"
)

func ValidRole(r string) bool {
	switch Role(r) {
	case RoleHolon, RoleProtogon, RoleEmanon, RoleMixed:
		return true
	}
	return false
}

// AssertableRole reports whether a role may be the subject of an assertion.
// Mixed is an inference outcome only.
func AssertableRole(r Role) bool {
	return r == RoleHolon || r == RoleProtogon || r == RoleEmanon
}

// AssertedBy identifies the origin of an assertion.
type AssertedBy string

const (
	AssertedBySystem AssertedBy = "system"
	AssertedByHuman  AssertedBy = "human"
	AssertedByPolicy AssertedBy = "policy"
)

func ValidAssertedBy(a string) bool {
	switch AssertedBy(a) {
	case AssertedBySystem, AssertedByHuman, AssertedByPolicy:
		return true
	}
	return false
}

// AssertionScope bounds where an assertion applies.
type AssertionScope string

const (
	ScopeGlobal  AssertionScope = "global"
	ScopeDataset AssertionScope = "dataset"
	ScopeProcess AssertionScope = "process"
)

func ValidAssertionScope(s string) bool {
	switch AssertionScope(s) {
	case ScopeGlobal, ScopeDataset, ScopeProcess:
		return true
	}
	return false
}

// ConditionOperator is the closed set of comparison operators a condition
// may use. Property conditions accept ==, != and in; edge conditions accept
// ==, > and <.
type ConditionOperator string

const (
	OpEqual    ConditionOperator = "=="
	OpNotEqual ConditionOperator = "!="
	OpIn       ConditionOperator = "in"
	OpGreater  ConditionOperator = ">"
	OpLess     ConditionOperator = "<"
)

// Condition is a declarative validity check attached to an assertion.
// Exactly one of the two shapes is populated: a property condition
// (Property, Operator, Value) compares a definition property, an edge
// condition (Edge, Direction, Operator, Count) compares an edge count.
type Condition struct {
	Property string            `json:"property,omitempty"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value,omitempty"`

	Edge      EdgeType  `json:"edge,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	Count     int       `json:"count,omitempty"`
}

// IsEdgeCondition reports which shape of the union is populated.
func (c Condition) IsEdgeCondition() bool {
	return c.Edge != ""
}

// Validate rejects conditions whose shape or operator is outside the closed
// vocabulary, so malformed conditions fail at the boundary instead of
// failing closed deep inside the evaluator.
func (c Condition) Validate() error {
	if c.IsEdgeCondition() {
		if !ValidEdgeType(string(c.Edge)) {
			return validationErrorf("condition: unknown edge type %q", c.Edge)
		}
		if c.Direction != "" && !ValidDirection(string(c.Direction)) {
			return validationErrorf("condition: unknown direction %q", c.Direction)
		}
		switch c.Operator {
		case OpEqual, OpGreater, OpLess:
		default:
			return validationErrorf("condition: operator %q not valid for edge conditions", c.Operator)
		}
		return nil
	}
	if c.Property == "" {
		return validationErrorf("condition: property or edge is required")
	}
	switch c.Operator {
	case OpEqual, OpNotEqual, OpIn:
	default:
		return validationErrorf("condition: operator %q not valid for property conditions", c.Operator)
	}
	if c.Operator == OpIn {
		if _, ok := c.Value.([]any); !ok {
			if _, ok := c.Value.([]string); !ok {
				return validationErrorf("condition: 'in' operator requires an array value")
			}
		}
	}
	return nil
}

// AssertedRole is a stored, conditional claim that a definition should be
// treated as a given role so long as its conditions hold. Immutable once
// constructed; updates replace the whole record.
type AssertedRole struct {
	Role       Role           `json:"role"`
	AssertedBy AssertedBy     `json:"asserted_by"`
	Confidence float64        `json:"confidence"`
	Conditions []Condition    `json:"conditions"`
	Scope      AssertionScope `json:"scope"`
	Timestamp  time.Time      `json:"timestamp"`
	Reason     string         `json:"reason"`
}

// AssertedRoleParams carries caller input into NewAssertedRole.
type AssertedRoleParams struct {
	Role       Role
	AssertedBy AssertedBy
	Confidence float64
	Conditions []Condition
	Scope      AssertionScope
	Timestamp  time.Time
	Reason     string
}

// NewAssertedRole validates and constructs an assertion. Malformed
// top-level fields fail fast here; they never silently default.
func NewAssertedRole(p AssertedRoleParams) (*AssertedRole, error) {
	if !ValidRole(string(p.Role)) || !AssertableRole(p.Role) {
		return nil, validationErrorf("asserted role: %q is not an assertable role", p.Role)
	}
	if !ValidAssertedBy(string(p.AssertedBy)) {
		return nil, validationErrorf("asserted role: unknown asserter %q", p.AssertedBy)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return nil, validationErrorf("asserted role: confidence %v outside [0,1]", p.Confidence)
	}
	scope := p.Scope
	if scope == "" {
		scope = ScopeGlobal
	}
	if !ValidAssertionScope(string(scope)) {
		return nil, validationErrorf("asserted role: unknown scope %q", p.Scope)
	}
	for i, c := range p.Conditions {
		if err := c.Validate(); err != nil {
			return nil, validationErrorf("asserted role: condition %d: %v", i, err)
		}
	}
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	conditions := make([]Condition, len(p.Conditions))
	copy(conditions, p.Conditions)
	return &AssertedRole{
		Role:       p.Role,
		AssertedBy: p.AssertedBy,
		Confidence: p.Confidence,
		Conditions: conditions,
		Scope:      scope,
		Timestamp:  ts,
		Reason:     p.Reason,
	}, nil
}

// DefaultConditions returns the validity conditions attached to a
// system-suggested assertion for the given role. The returned slice is a
// fresh copy; callers may not mutate the defaults.
func DefaultConditions(role Role) []Condition {
	defaults, ok := defaultConditions[role]
	if !ok {
		return nil
	}
	out := make([]Condition, len(defaults))
	copy(out, defaults)
	return out
}

var defaultConditions = map[Role][]Condition{
	RoleHolon: {
		{Property: "stability", Operator: OpEqual, Value: string(StabilityStable)},
		{Property: "authority", Operator: OpIn, Value: []any{string(AuthoritySystem), string(AuthorityExternal)}},
	},
	RoleProtogon: {
		{Property: "time", Operator: OpIn, Value: []any{string(TimeEvolves), string(TimeVersioned)}},
		{Edge: EdgeSupersedes, Direction: DirectionEither, Operator: OpGreater, Count: 0},
	},
	RoleEmanon: {
		{Property: "stability", Operator: OpIn, Value: []any{string(StabilityContextual), string(StabilityInterpretive), string(StabilityEvolves)}},
		{Property: "authority", Operator: OpIn, Value: []any{string(AuthorityHuman), string(AuthorityProcess)}},
	},
}
