package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AssertionStore owns the asserted-role map, keyed by definition id.
// Implementations must serialize writes; reads may run concurrently
// against a consistent snapshot.
type AssertionStore interface {
	Set(ctx context.Context, definitionID string, role *AssertedRole) error
	Get(ctx context.Context, definitionID string) (*AssertedRole, error)
	Clear(ctx context.Context, definitionID string) error
	All(ctx context.Context) (map[string]AssertedRole, error)
	ReplaceAll(ctx context.Context, assertions map[string]AssertedRole) error
}

// ProfileSnapshot is one historical behavior profile for a definition,
// recorded at resolution time when snapshot history is enabled.
type ProfileSnapshot struct {
	ID            uuid.UUID        `json:"id"`
	DefinitionID  string           `json:"definition_id"`
	Profile       BehaviorProfile  `json:"profile"`
	EffectiveRole Role             `json:"effective_role"`
	Source        ResolutionSource `json:"source"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SnapshotStore persists profile history and answers nearest-profile
// queries over it.
type SnapshotStore interface {
	Save(ctx context.Context, s *ProfileSnapshot) error
	ListByDefinition(ctx context.Context, definitionID string, limit int) ([]ProfileSnapshot, error)
	Nearest(ctx context.Context, profile BehaviorProfile, limit int) ([]ProfileSnapshot, error)
}
