package domain

import "time"

// ResolutionSource says which side of the assertion/inference split won.
type ResolutionSource string

const (
	SourceInferred           ResolutionSource = "inferred"
	SourceAsserted           ResolutionSource = "asserted"
	SourceInferredDueToDrift ResolutionSource = "inferred_due_to_drift"
)

// RoleInference is the classifier's output for one profile.
type RoleInference struct {
	Role       Role             `json:"role"`
	Confidence float64          `json:"confidence"`
	Distances  map[Role]float64 `json:"distances"`
	Profile    BehaviorProfile  `json:"profile"`
}

// DriftType distinguishes informational drift from invalidating drift.
type DriftType string

const (
	// DriftSoft: the assertion still holds but observed behavior classifies
	// to a different role. Reported, does not change the effective role.
	DriftSoft DriftType = "soft"
	// DriftHard: the assertion's conditions no longer hold; observed
	// behavior wins.
	DriftHard DriftType = "hard"
)

// Drift records a mismatch between asserted intent and observed behavior.
type Drift struct {
	Type             DriftType         `json:"type"`
	InferredRole     Role              `json:"inferred_role"`
	AssertedRole     Role              `json:"asserted_role"`
	Confidence       float64           `json:"confidence,omitempty"`
	FailedConditions []ConditionResult `json:"failed_conditions,omitempty"`
}

// ConditionResult is the per-condition outcome of an evaluation.
type ConditionResult struct {
	Condition Condition `json:"condition"`
	Met       bool      `json:"met"`
	Actual    any       `json:"actual,omitempty"`
}

// ConditionEvaluation is the outcome of checking an assertion's full
// condition list. An empty list is vacuously met.
type ConditionEvaluation struct {
	AllMet  bool              `json:"all_met"`
	Results []ConditionResult `json:"results"`
}

// FailedResults returns only the conditions that did not hold.
func (e ConditionEvaluation) FailedResults() []ConditionResult {
	var failed []ConditionResult
	for _, r := range e.Results {
		if !r.Met {
			failed = append(failed, r)
		}
	}
	return failed
}

// ResolutionRecord is the full, ephemeral outcome of resolving a
// definition's effective role. Never stored; recomputing with the same
// inputs yields the same record (timestamps aside).
type ResolutionRecord struct {
	DefinitionID        string               `json:"definition_id,omitempty"`
	EffectiveRole       Role                 `json:"effective_role"`
	Source              ResolutionSource     `json:"source"`
	Inferred            RoleInference        `json:"inferred"`
	Asserted            *AssertedRole        `json:"asserted,omitempty"`
	Drift               *Drift               `json:"drift,omitempty"`
	BehaviorProfile     BehaviorProfile      `json:"behavior_profile"`
	ConditionEvaluation *ConditionEvaluation `json:"condition_evaluation,omitempty"`
	ResolvedAt          time.Time            `json:"resolved_at,omitempty"`
}

// Susceptibility prices how risky a relationship type is for an entity
// playing a given role.
type Susceptibility struct {
	RiskMultiplier float64 `json:"risk_multiplier"`
	Explanation    string  `json:"explanation"`
}

// EdgeRisk is the priced risk of one edge touching a target definition.
type EdgeRisk struct {
	Edge            Edge             `json:"edge"`
	TargetID        string           `json:"target_id"`
	EffectiveRole   Role             `json:"effective_role"`
	RoleSource      ResolutionSource `json:"role_source"`
	BaseRisk        float64          `json:"base_risk"`
	RiskMultiplier  float64          `json:"risk_multiplier"`
	AdjustedRisk    float64          `json:"adjusted_risk"`
	Explanation     string           `json:"explanation"`
	RoleExplanation string           `json:"role_explanation"`
}

// DriftReport is one entry in a batch drift scan.
type DriftReport struct {
	DefinitionID string    `json:"definition_id"`
	Drift        Drift     `json:"drift"`
	DetectedAt   time.Time `json:"detected_at"`
}
