package domain

// Stability describes how fixed a definition's meaning is.
type Stability string

const (
	StabilityStable       Stability = "stable"
	StabilityContextual   Stability = "contextual"
	StabilityInterpretive Stability = "interpretive"
	StabilityEvolves      Stability = "evolves"
)

func ValidStability(s string) bool {
	switch Stability(s) {
	case StabilityStable, StabilityContextual, StabilityInterpretive, StabilityEvolves:
		return true
	}
	return false
}

// Authority describes who owns a definition's meaning.
type Authority string

const (
	AuthoritySystem   Authority = "system"
	AuthorityExternal Authority = "external"
	AuthorityProcess  Authority = "process"
	AuthorityHuman    Authority = "human"
)

func ValidAuthority(a string) bool {
	switch Authority(a) {
	case AuthoritySystem, AuthorityExternal, AuthorityProcess, AuthorityHuman:
		return true
	}
	return false
}

// TimeBehavior describes how a definition changes over time.
type TimeBehavior string

const (
	TimeImmutable TimeBehavior = "immutable"
	TimeMutable   TimeBehavior = "mutable"
	TimeEvolves   TimeBehavior = "evolves"
	TimeVersioned TimeBehavior = "versioned"
)

func ValidTimeBehavior(t string) bool {
	switch TimeBehavior(t) {
	case TimeImmutable, TimeMutable, TimeEvolves, TimeVersioned:
		return true
	}
	return false
}

// Definition is a data-definition entity as supplied by the hosting catalog.
// The engine never mutates it. Any of the categorical properties may be
// absent; derivation falls back to mid-point defaults.
type Definition struct {
	ID        string         `json:"id"`
	Stability Stability      `json:"stability,omitempty"`
	Authority Authority      `json:"authority,omitempty"`
	Time      TimeBehavior   `json:"time,omitempty"`
	Values    map[string]any `json:"values,omitempty"`
}

// EdgeType is the closed vocabulary of relationship types between definitions.
type EdgeType string

const (
	EdgeDependsOn        EdgeType = "DEPENDS_ON"
	EdgeSupersedes       EdgeType = "SUPERSEDES"
	EdgeGovernedBy       EdgeType = "GOVERNED_BY"
	EdgeConflictsWith    EdgeType = "CONFLICTS_WITH"
	EdgeRefinesMeaningOf EdgeType = "REFINES_MEANING_OF"
	EdgeValidatesAgainst EdgeType = "VALIDATES_AGAINST"
	EdgeDefinesMeaningOf EdgeType = "DEFINES_MEANING_OF"
)

func ValidEdgeType(e string) bool {
	switch EdgeType(e) {
	case EdgeDependsOn, EdgeSupersedes, EdgeGovernedBy, EdgeConflictsWith,
		EdgeRefinesMeaningOf, EdgeValidatesAgainst, EdgeDefinesMeaningOf:
		return true
	}
	return false
}

// Direction is the orientation of an edge relative to a given definition.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionEither   Direction = "either"
)

func ValidDirection(d string) bool {
	switch Direction(d) {
	case DirectionIncoming, DirectionOutgoing, DirectionEither:
		return true
	}
	return false
}

// Edge is a single relationship between two definitions.
type Edge struct {
	Type     EdgeType `json:"type"`
	SourceID string   `json:"source_id"`
	TargetID string   `json:"target_id"`
}

// Touches reports whether the edge connects to the given definition at all.
func (e Edge) Touches(definitionID string) bool {
	return e.SourceID == definitionID || e.TargetID == definitionID
}

// DirectionFor returns the edge's orientation relative to the given
// definition: outgoing when the definition is the source, incoming when it
// is the target. An edge that does not touch the definition has no
// orientation and returns "".
func (e Edge) DirectionFor(definitionID string) Direction {
	switch definitionID {
	case e.SourceID:
		return DirectionOutgoing
	case e.TargetID:
		return DirectionIncoming
	}
	return ""
}

// CountEdges counts edges of the given type oriented as requested relative
// to the definition. DirectionEither counts both orientations but never
// double-counts a self-loop.
func CountEdges(definitionID string, edges []Edge, edgeType EdgeType, direction Direction) int {
	count := 0
	for _, e := range edges {
		if e.Type != edgeType {
			continue
		}
		switch direction {
		case DirectionIncoming:
			if e.TargetID == definitionID {
				count++
			}
		case DirectionOutgoing:
			if e.SourceID == definitionID {
				count++
			}
		default:
			if e.Touches(definitionID) {
				count++
			}
		}
	}
	return count
}
