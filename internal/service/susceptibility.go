package service

import "github.com/ontiq/ontoscope/internal/domain"

// BaseEdgeRisk is the unweighted risk of any edge before the role
// multiplier is applied.
const BaseEdgeRisk = 1.0

// susceptibilityTable encodes domain policy: how strongly each relationship
// type should be treated as risky for an entity playing each role. Fixed at
// load time; no mutation path.
var susceptibilityTable = map[domain.EdgeType]map[domain.Role]domain.Susceptibility{
	domain.EdgeDependsOn: {
		domain.RoleHolon:    {RiskMultiplier: 0.7, Explanation: "Stable anchors exist to be depended on"},
		domain.RoleProtogon: {RiskMultiplier: 1.2, Explanation: "Dependents of a phase-bound bridge must follow its transitions"},
		domain.RoleEmanon:   {RiskMultiplier: 2.0, Explanation: "Depending on a contextual entity inherits its volatility"},
	},
	domain.EdgeSupersedes: {
		domain.RoleHolon:    {RiskMultiplier: 3.0, Explanation: "Superseding a stable anchor is identity-breaking"},
		domain.RoleProtogon: {RiskMultiplier: 1.5, Explanation: "Supersession moves a bridge's phase boundary"},
		domain.RoleEmanon:   {RiskMultiplier: 0.5, Explanation: "Supersession is expected churn for an emergent entity"},
	},
	domain.EdgeGovernedBy: {
		domain.RoleHolon:    {RiskMultiplier: 1.3, Explanation: "New governance over an anchor signals an authority shift"},
		domain.RoleProtogon: {RiskMultiplier: 0.8, Explanation: "Bridges tolerate governance across their phases"},
		domain.RoleEmanon:   {RiskMultiplier: 0.6, Explanation: "Governance stabilizes an emergent entity"},
	},
	domain.EdgeConflictsWith: {
		domain.RoleHolon:    {RiskMultiplier: 4.0, Explanation: "A contested anchor undermines everything built on it"},
		domain.RoleProtogon: {RiskMultiplier: 2.0, Explanation: "Conflict across a bridge splits its two phases"},
		domain.RoleEmanon:   {RiskMultiplier: 1.2, Explanation: "Emergent entities conflict while their meaning settles"},
	},
	domain.EdgeRefinesMeaningOf: {
		domain.RoleHolon:    {RiskMultiplier: 2.0, Explanation: "Refining an anchor's meaning erodes its stability guarantee"},
		domain.RoleProtogon: {RiskMultiplier: 1.0, Explanation: "Refinement is routine maintenance for a bridge"},
		domain.RoleEmanon:   {RiskMultiplier: 0.6, Explanation: "Refinement is how an emergent meaning converges"},
	},
	domain.EdgeValidatesAgainst: {
		domain.RoleHolon:    {RiskMultiplier: 0.5, Explanation: "Anchors are the natural target of validation"},
		domain.RoleProtogon: {RiskMultiplier: 1.0, Explanation: "Validation against a bridge holds only within its phase"},
		domain.RoleEmanon:   {RiskMultiplier: 1.8, Explanation: "Validating against an unsettled meaning is fragile"},
	},
	domain.EdgeDefinesMeaningOf: {
		domain.RoleHolon:    {RiskMultiplier: 0.6, Explanation: "Defining meaning is an anchor's purpose"},
		domain.RoleProtogon: {RiskMultiplier: 1.0, Explanation: "A bridge defines meaning only for its span"},
		domain.RoleEmanon:   {RiskMultiplier: 1.5, Explanation: "An emergent entity defining meaning propagates uncertainty"},
	},
}

// GetSusceptibility prices a role/edge-type pair. Unknown inputs never
// fail: they fall back to a neutral 1.0 multiplier.
func GetSusceptibility(role domain.Role, edgeType domain.EdgeType) domain.Susceptibility {
	byRole, ok := susceptibilityTable[edgeType]
	if !ok {
		return domain.Susceptibility{RiskMultiplier: 1.0, Explanation: "No specific susceptibility defined"}
	}
	s, ok := byRole[role]
	if !ok {
		return domain.Susceptibility{RiskMultiplier: 1.0, Explanation: "No role-specific susceptibility"}
	}
	return s
}

// ComputeEdgeRisk prices the risk of one edge touching the target
// definition, weighting the base risk by the target's resolved role.
func ComputeEdgeRisk(edge domain.Edge, target domain.Definition, edges []domain.Edge, asserted *domain.AssertedRole) domain.EdgeRisk {
	resolution := ResolveEffectiveRole(target, edges, asserted)
	susceptibility := GetSusceptibility(resolution.EffectiveRole, edge.Type)

	return domain.EdgeRisk{
		Edge:            edge,
		TargetID:        target.ID,
		EffectiveRole:   resolution.EffectiveRole,
		RoleSource:      resolution.Source,
		BaseRisk:        BaseEdgeRisk,
		RiskMultiplier:  susceptibility.RiskMultiplier,
		AdjustedRisk:    BaseEdgeRisk * susceptibility.RiskMultiplier,
		Explanation:     susceptibility.Explanation,
		RoleExplanation: roleExplanation(resolution),
	}
}

func roleExplanation(r domain.ResolutionRecord) string {
	switch r.Source {
	case domain.SourceAsserted:
		return "role asserted by " + string(r.Asserted.AssertedBy) + " and conditions hold"
	case domain.SourceInferredDueToDrift:
		return "asserted role invalidated by failed conditions; inferred role applied"
	default:
		return "role inferred from behavior profile"
	}
}
