package service

import (
	"testing"

	"github.com/ontiq/ontoscope/internal/domain"
)

// holonLikeDefinition derives a profile near the holon prototype: stable,
// system-owned, immutable, heavily depended on.
func holonLikeDefinition() (domain.Definition, []domain.Edge) {
	def := domain.Definition{
		ID:        "core.customer",
		Stability: domain.StabilityStable,
		Authority: domain.AuthoritySystem,
		Time:      domain.TimeImmutable,
	}
	edges := make([]domain.Edge, 9)
	for i := range edges {
		edges[i] = domain.Edge{Type: domain.EdgeDependsOn, SourceID: "dep", TargetID: def.ID}
	}
	return def, edges
}

func TestResolveEffectiveRole_NoAssertion(t *testing.T) {
	def, edges := holonLikeDefinition()

	record := ResolveEffectiveRole(def, edges, nil)

	if record.Source != domain.SourceInferred {
		t.Errorf("source = %v, want inferred", record.Source)
	}
	if record.EffectiveRole != record.Inferred.Role {
		t.Errorf("effective role %v must follow inference %v", record.EffectiveRole, record.Inferred.Role)
	}
	if record.Drift != nil {
		t.Errorf("drift = %+v, want nil without assertion", record.Drift)
	}
	if record.ConditionEvaluation != nil {
		t.Error("no conditions were evaluated, evaluation must be nil")
	}
}

func TestResolveEffectiveRole_AssertionHolds(t *testing.T) {
	def, edges := holonLikeDefinition()
	asserted, err := domain.NewAssertedRole(domain.AssertedRoleParams{
		Role:       domain.RoleHolon,
		AssertedBy: domain.AssertedByHuman,
		Confidence: 0.95,
		Conditions: []domain.Condition{
			{Property: "authority", Operator: domain.OpEqual, Value: "system"},
		},
	})
	if err != nil {
		t.Fatalf("NewAssertedRole failed: %v", err)
	}

	record := ResolveEffectiveRole(def, edges, asserted)

	if record.Source != domain.SourceAsserted {
		t.Errorf("source = %v, want asserted", record.Source)
	}
	if record.EffectiveRole != domain.RoleHolon {
		t.Errorf("effective role = %v, want holon", record.EffectiveRole)
	}
	if record.Drift != nil {
		t.Errorf("assertion matches inference, drift = %+v, want nil", record.Drift)
	}
	if record.ConditionEvaluation == nil || !record.ConditionEvaluation.AllMet {
		t.Error("condition evaluation must be attached and met")
	}
}

func TestResolveEffectiveRole_SoftDrift(t *testing.T) {
	def, edges := holonLikeDefinition()
	// Conditions hold, but the asserted role disagrees with observed behavior.
	asserted, err := domain.NewAssertedRole(domain.AssertedRoleParams{
		Role:       domain.RoleEmanon,
		AssertedBy: domain.AssertedByPolicy,
		Confidence: 0.8,
		Conditions: []domain.Condition{
			{Edge: domain.EdgeConflictsWith, Direction: domain.DirectionEither, Operator: domain.OpLess, Count: 1},
		},
	})
	if err != nil {
		t.Fatalf("NewAssertedRole failed: %v", err)
	}

	record := ResolveEffectiveRole(def, edges, asserted)

	if record.Source != domain.SourceAsserted {
		t.Errorf("source = %v, want asserted (soft drift is informational)", record.Source)
	}
	if record.EffectiveRole != domain.RoleEmanon {
		t.Errorf("effective role = %v, asserted role must win on soft drift", record.EffectiveRole)
	}
	if record.Drift == nil || record.Drift.Type != domain.DriftSoft {
		t.Fatalf("drift = %+v, want soft", record.Drift)
	}
	if record.Drift.InferredRole != record.Inferred.Role || record.Drift.AssertedRole != domain.RoleEmanon {
		t.Errorf("drift roles wrong: %+v", record.Drift)
	}
	if record.Drift.Confidence != record.Inferred.Confidence {
		t.Errorf("soft drift must carry inference confidence, got %v", record.Drift.Confidence)
	}
}

func TestResolveEffectiveRole_HardDrift(t *testing.T) {
	def, edges := holonLikeDefinition()
	def.Authority = domain.AuthorityHuman

	asserted, err := domain.NewAssertedRole(domain.AssertedRoleParams{
		Role:       domain.RoleHolon,
		AssertedBy: domain.AssertedByHuman,
		Confidence: 0.9,
		Conditions: []domain.Condition{
			{Property: "authority", Operator: domain.OpEqual, Value: "system"},
		},
	})
	if err != nil {
		t.Fatalf("NewAssertedRole failed: %v", err)
	}

	record := ResolveEffectiveRole(def, edges, asserted)

	if record.Source != domain.SourceInferredDueToDrift {
		t.Errorf("source = %v, want inferred_due_to_drift", record.Source)
	}
	if record.EffectiveRole != record.Inferred.Role {
		t.Errorf("invalidated assertion must yield inferred role, got %v", record.EffectiveRole)
	}
	if record.Drift == nil || record.Drift.Type != domain.DriftHard {
		t.Fatalf("drift = %+v, want hard", record.Drift)
	}
	if len(record.Drift.FailedConditions) != 1 {
		t.Fatalf("failed conditions = %d, want 1", len(record.Drift.FailedConditions))
	}
	if record.Drift.FailedConditions[0].Condition.Property != "authority" {
		t.Errorf("wrong failed condition: %+v", record.Drift.FailedConditions[0])
	}
}

func TestResolveEffectiveRole_Idempotent(t *testing.T) {
	def, edges := holonLikeDefinition()
	asserted, err := domain.NewAssertedRole(domain.AssertedRoleParams{
		Role:       domain.RoleHolon,
		AssertedBy: domain.AssertedBySystem,
		Confidence: 0.7,
		Conditions: domain.DefaultConditions(domain.RoleHolon),
	})
	if err != nil {
		t.Fatalf("NewAssertedRole failed: %v", err)
	}

	first := ResolveEffectiveRole(def, edges, asserted)
	second := ResolveEffectiveRole(def, edges, asserted)

	if first.EffectiveRole != second.EffectiveRole || first.Source != second.Source {
		t.Error("re-resolution with identical inputs must be idempotent")
	}
	if (first.Drift == nil) != (second.Drift == nil) {
		t.Error("drift outcome must be stable across re-resolution")
	}
}
