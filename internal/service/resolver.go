package service

import "github.com/ontiq/ontoscope/internal/domain"

// ResolveEffectiveRole reconciles the inferred role with an optional stored
// assertion. Pure decision table over three outcomes:
//
//   - no assertion: the inferred role stands.
//   - assertion present, conditions hold: the asserted role stands; a
//     differing inference is reported as soft drift but changes nothing.
//   - assertion present, conditions fail: the assertion is invalidated,
//     observed behavior wins, and the failure is reported as hard drift.
//
// Nothing is cached or persisted; re-running with the same inputs is
// idempotent.
func ResolveEffectiveRole(def domain.Definition, edges []domain.Edge, asserted *domain.AssertedRole) domain.ResolutionRecord {
	profile := DeriveProfile(def, edges)
	inferred := InferRole(profile)

	record := domain.ResolutionRecord{
		Inferred:        inferred,
		BehaviorProfile: profile,
	}

	if asserted == nil {
		record.EffectiveRole = inferred.Role
		record.Source = domain.SourceInferred
		return record
	}

	record.Asserted = asserted
	eval := EvaluateConditions(asserted.Conditions, def, edges)
	record.ConditionEvaluation = &eval

	if eval.AllMet {
		record.EffectiveRole = asserted.Role
		record.Source = domain.SourceAsserted
		if inferred.Role != asserted.Role {
			record.Drift = &domain.Drift{
				Type:         domain.DriftSoft,
				InferredRole: inferred.Role,
				AssertedRole: asserted.Role,
				Confidence:   inferred.Confidence,
			}
		}
		return record
	}

	record.EffectiveRole = inferred.Role
	record.Source = domain.SourceInferredDueToDrift
	record.Drift = &domain.Drift{
		Type:             domain.DriftHard,
		InferredRole:     inferred.Role,
		AssertedRole:     asserted.Role,
		FailedConditions: eval.FailedResults(),
	}
	return record
}
