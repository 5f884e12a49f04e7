package domain

import (
	"math"
	"time"
)

// BehaviorProfile is the observed-behavior vector for a definition: four
// components, each in [0,1], derived from the definition's declared
// properties and its relationship edges. Immutable once constructed.
//
// Sources records, per dimension, which inputs produced the value, for
// explainability. It is a trace, not an input to any computation.
type BehaviorProfile struct {
	InterpretiveWeight  float64           `json:"interpretive_weight"`
	TemporalFlux        float64           `json:"temporal_flux"`
	AuthorityRigidity   float64           `json:"authority_rigidity"`
	DependencyTolerance float64           `json:"dependency_tolerance"`
	Sources             map[string]string `json:"sources,omitempty"`
	ComputedAt          time.Time         `json:"computed_at"`
}

// DistanceTo returns the Euclidean distance between two profiles in the
// 4-dimensional behavior space. Symmetric; zero iff all components match.
func (p BehaviorProfile) DistanceTo(other BehaviorProfile) float64 {
	dw := p.InterpretiveWeight - other.InterpretiveWeight
	df := p.TemporalFlux - other.TemporalFlux
	dr := p.AuthorityRigidity - other.AuthorityRigidity
	dt := p.DependencyTolerance - other.DependencyTolerance
	return math.Sqrt(dw*dw + df*df + dr*dr + dt*dt)
}

// Vector returns the profile as a fixed-order float32 slice
// (interpretive weight, temporal flux, authority rigidity, dependency
// tolerance), the layout used for snapshot persistence.
func (p BehaviorProfile) Vector() []float32 {
	return []float32{
		float32(p.InterpretiveWeight),
		float32(p.TemporalFlux),
		float32(p.AuthorityRigidity),
		float32(p.DependencyTolerance),
	}
}

// ProfileFromVector rebuilds a profile from the fixed-order vector layout.
func ProfileFromVector(v []float32) BehaviorProfile {
	var p BehaviorProfile
	if len(v) == 4 {
		p.InterpretiveWeight = float64(v[0])
		p.TemporalFlux = float64(v[1])
		p.AuthorityRigidity = float64(v[2])
		p.DependencyTolerance = float64(v[3])
	}
	return p
}

// CanonicalRoleOrder fixes the enumeration order of the reference
// prototypes. Classification tie-breaks resolve to the first prototype in
// this order that achieves the minimum distance.
var CanonicalRoleOrder = []Role{RoleHolon, RoleProtogon, RoleEmanon}

// CanonicalProfiles are the fixed reference prototypes, one per named role.
// RoleMixed is a classifier outcome, never a prototype. These are load-time
// constants with no mutation path.
var CanonicalProfiles = map[Role]BehaviorProfile{
	RoleHolon: {
		InterpretiveWeight:  0.1,
		TemporalFlux:        0.1,
		AuthorityRigidity:   0.9,
		DependencyTolerance: 0.9,
	},
	RoleProtogon: {
		InterpretiveWeight:  0.4,
		TemporalFlux:        0.9,
		AuthorityRigidity:   0.8,
		DependencyTolerance: 0.2,
	},
	RoleEmanon: {
		InterpretiveWeight:  0.9,
		TemporalFlux:        0.8,
		AuthorityRigidity:   0.2,
		DependencyTolerance: 0.2,
	},
}
