package service

import (
	"fmt"
	"time"

	"github.com/ontiq/ontoscope/internal/domain"
)

const (
	// Mid-point defaults applied when a categorical property is absent or
	// outside the known vocabulary.
	DefaultInterpretiveWeight = 0.5
	DefaultAuthorityRigidity  = 0.5
	DefaultTemporalFlux       = 0.3

	// SupersessionFluxStep is added to temporal flux per SUPERSEDES edge
	// touching the definition, either direction.
	SupersessionFluxStep = 0.2

	// DependencySaturation is the edge count at which raw dependency
	// tolerance reaches 1.0.
	DependencySaturation = 10

	// DependencyPivot splits the tolerance range: stable definitions are
	// floored at it, everything else is capped at it.
	DependencyPivot = 0.5
)

var interpretiveWeightByStability = map[domain.Stability]float64{
	domain.StabilityStable:       0.1,
	domain.StabilityContextual:   0.5,
	domain.StabilityInterpretive: 0.8,
	domain.StabilityEvolves:      0.8,
}

var authorityRigidityByAuthority = map[domain.Authority]float64{
	domain.AuthoritySystem:   0.9,
	domain.AuthorityExternal: 0.8,
	domain.AuthorityProcess:  0.6,
	domain.AuthorityHuman:    0.2,
}

var temporalFluxByTime = map[domain.TimeBehavior]float64{
	domain.TimeImmutable: 0.0,
	domain.TimeMutable:   0.3,
	domain.TimeEvolves:   0.7,
	domain.TimeVersioned: 0.7,
}

// DeriveProfile maps a definition and its edges to a behavior profile.
// Pure and deterministic: the same inputs always produce the same four
// components. Each dimension records its contributing inputs in Sources.
func DeriveProfile(def domain.Definition, edges []domain.Edge) domain.BehaviorProfile {
	sources := make(map[string]string, 4)

	weight, ok := interpretiveWeightByStability[def.Stability]
	if !ok {
		weight = DefaultInterpretiveWeight
	}
	sources["interpretive_weight"] = propertyTrace("stability", string(def.Stability), ok)

	rigidity, ok := authorityRigidityByAuthority[def.Authority]
	if !ok {
		rigidity = DefaultAuthorityRigidity
	}
	sources["authority_rigidity"] = propertyTrace("authority", string(def.Authority), ok)

	flux, ok := temporalFluxByTime[def.Time]
	if !ok {
		flux = DefaultTemporalFlux
	}
	supersessions := domain.CountEdges(def.ID, edges, domain.EdgeSupersedes, domain.DirectionEither)
	flux += SupersessionFluxStep * float64(supersessions)
	if flux > 1.0 {
		flux = 1.0
	}
	sources["temporal_flux"] = fmt.Sprintf("%s, supersedes_edges=%d",
		propertyTrace("time", string(def.Time), ok), supersessions)

	incoming := domain.CountEdges(def.ID, edges, domain.EdgeDependsOn, domain.DirectionIncoming) +
		domain.CountEdges(def.ID, edges, domain.EdgeValidatesAgainst, domain.DirectionIncoming)
	outgoing := domain.CountEdges(def.ID, edges, domain.EdgeDefinesMeaningOf, domain.DirectionOutgoing)
	raw := float64(incoming+outgoing) / DependencySaturation
	if raw > 1.0 {
		raw = 1.0
	}
	// Asymmetric by policy: stable definitions are assumed tolerant of
	// being depended on, everything else is capped at the pivot.
	var tolerance float64
	if def.Stability == domain.StabilityStable {
		tolerance = raw
		if tolerance < DependencyPivot {
			tolerance = DependencyPivot
		}
	} else {
		tolerance = raw
		if tolerance > DependencyPivot {
			tolerance = DependencyPivot
		}
	}
	sources["dependency_tolerance"] = fmt.Sprintf("incoming_edges=%d, outgoing_edges=%d, stability=%s",
		incoming, outgoing, orUnset(string(def.Stability)))

	return domain.BehaviorProfile{
		InterpretiveWeight:  weight,
		TemporalFlux:        flux,
		AuthorityRigidity:   rigidity,
		DependencyTolerance: tolerance,
		Sources:             sources,
		ComputedAt:          time.Now().UTC(),
	}
}

func propertyTrace(name, value string, known bool) string {
	if !known {
		return fmt.Sprintf("%s=%s (default applied)", name, orUnset(value))
	}
	return fmt.Sprintf("%s=%s", name, value)
}

func orUnset(v string) string {
	if v == "" {
		return "unset"
	}
	return v
}
