package service

import "github.com/ontiq/ontoscope/internal/domain"

// MixedDistanceThreshold is the distance beyond which a profile is too far
// from every prototype to be assigned a named role.
const MixedDistanceThreshold = 0.5

// InferRole classifies a behavior profile by nearest canonical prototype.
// Ties resolve to the first prototype in domain.CanonicalRoleOrder that
// achieves the minimum distance, which keeps exact ties deterministic.
func InferRole(profile domain.BehaviorProfile) domain.RoleInference {
	distances := make(map[domain.Role]float64, len(domain.CanonicalProfiles))

	best := domain.RoleMixed
	minDistance := -1.0
	for _, role := range domain.CanonicalRoleOrder {
		d := profile.DistanceTo(domain.CanonicalProfiles[role])
		distances[role] = d
		if minDistance < 0 || d < minDistance {
			minDistance = d
			best = role
		}
	}

	if minDistance > MixedDistanceThreshold {
		best = domain.RoleMixed
	}

	confidence := 1.0 - minDistance
	if confidence < 0 {
		confidence = 0
	}

	return domain.RoleInference{
		Role:       best,
		Confidence: confidence,
		Distances:  distances,
		Profile:    profile,
	}
}
