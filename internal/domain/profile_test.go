package domain

import (
	"math"
	"testing"
)

func TestDistanceTo_Symmetric(t *testing.T) {
	a := BehaviorProfile{InterpretiveWeight: 0.1, TemporalFlux: 0.4, AuthorityRigidity: 0.9, DependencyTolerance: 0.2}
	b := BehaviorProfile{InterpretiveWeight: 0.7, TemporalFlux: 0.1, AuthorityRigidity: 0.3, DependencyTolerance: 0.8}

	if ab, ba := a.DistanceTo(b), b.DistanceTo(a); ab != ba {
		t.Errorf("distance not symmetric: a->b=%v, b->a=%v", ab, ba)
	}
}

func TestDistanceTo_ZeroIffEqual(t *testing.T) {
	a := BehaviorProfile{InterpretiveWeight: 0.5, TemporalFlux: 0.5, AuthorityRigidity: 0.5, DependencyTolerance: 0.5}
	same := BehaviorProfile{InterpretiveWeight: 0.5, TemporalFlux: 0.5, AuthorityRigidity: 0.5, DependencyTolerance: 0.5}

	if d := a.DistanceTo(same); d != 0 {
		t.Errorf("distance between equal profiles = %v, want 0", d)
	}

	almost := same
	almost.TemporalFlux = 0.5001
	if d := a.DistanceTo(almost); d == 0 {
		t.Error("distance between different profiles must be non-zero")
	}
}

func TestDistanceTo_KnownValue(t *testing.T) {
	a := BehaviorProfile{}
	b := BehaviorProfile{InterpretiveWeight: 1, TemporalFlux: 1, AuthorityRigidity: 1, DependencyTolerance: 1}

	if d := a.DistanceTo(b); math.Abs(d-2.0) > 1e-12 {
		t.Errorf("corner-to-corner distance = %v, want 2.0", d)
	}
}

func TestCanonicalProfiles_ComponentsInRange(t *testing.T) {
	for role, p := range CanonicalProfiles {
		for name, v := range map[string]float64{
			"interpretive_weight":  p.InterpretiveWeight,
			"temporal_flux":        p.TemporalFlux,
			"authority_rigidity":   p.AuthorityRigidity,
			"dependency_tolerance": p.DependencyTolerance,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s prototype %s = %v outside [0,1]", role, name, v)
			}
		}
	}
}

// The centroid must be distant enough from every prototype that a fully
// ambiguous profile classifies as mixed rather than snapping to a role.
func TestCanonicalProfiles_CentroidBeyondMixedThreshold(t *testing.T) {
	centroid := BehaviorProfile{InterpretiveWeight: 0.5, TemporalFlux: 0.5, AuthorityRigidity: 0.5, DependencyTolerance: 0.5}
	for role, p := range CanonicalProfiles {
		if d := centroid.DistanceTo(p); d <= 0.5 {
			t.Errorf("centroid within mixed threshold of %s prototype (distance %v)", role, d)
		}
	}
}

func TestCanonicalRoleOrder_CoversAllPrototypes(t *testing.T) {
	if len(CanonicalRoleOrder) != len(CanonicalProfiles) {
		t.Fatalf("order has %d roles, prototypes have %d", len(CanonicalRoleOrder), len(CanonicalProfiles))
	}
	for _, role := range CanonicalRoleOrder {
		if _, ok := CanonicalProfiles[role]; !ok {
			t.Errorf("role %s in order but has no prototype", role)
		}
	}
	if _, ok := CanonicalProfiles[RoleMixed]; ok {
		t.Error("mixed must never have a prototype")
	}
}

func TestProfileVector_RoundTrip(t *testing.T) {
	p := BehaviorProfile{InterpretiveWeight: 0.25, TemporalFlux: 0.5, AuthorityRigidity: 0.75, DependencyTolerance: 1}
	got := ProfileFromVector(p.Vector())

	if got.InterpretiveWeight != 0.25 || got.TemporalFlux != 0.5 ||
		got.AuthorityRigidity != 0.75 || got.DependencyTolerance != 1 {
		t.Errorf("vector round-trip mangled profile: %+v", got)
	}
}
