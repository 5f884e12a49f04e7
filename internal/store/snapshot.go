package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ontiq/ontoscope/internal/domain"
	pgvector "github.com/pgvector/pgvector-go"
)

// SnapshotStore persists behavior-profile history as 4-dimensional vectors
// so past profiles can be queried by distance to a current one.
type SnapshotStore struct {
	db *pgxpool.Pool
}

func NewSnapshotStore(db *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Save(ctx context.Context, snap *domain.ProfileSnapshot) error {
	vec := pgvector.NewVector(snap.Profile.Vector())
	_, err := s.db.Exec(ctx,
		`INSERT INTO profile_snapshots (id, definition_id, profile, effective_role, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		snap.ID, snap.DefinitionID, vec, snap.EffectiveRole, snap.Source, snap.CreatedAt,
	)
	return err
}

func (s *SnapshotStore) ListByDefinition(ctx context.Context, definitionID string, limit int) ([]domain.ProfileSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, definition_id, profile, effective_role, source, created_at
		 FROM profile_snapshots
		 WHERE definition_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		definitionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

// Nearest returns the stored snapshots closest to the given profile in
// behavior space, nearest first.
func (s *SnapshotStore) Nearest(ctx context.Context, profile domain.BehaviorProfile, limit int) ([]domain.ProfileSnapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	vec := pgvector.NewVector(profile.Vector())
	rows, err := s.db.Query(ctx,
		`SELECT id, definition_id, profile, effective_role, source, created_at
		 FROM profile_snapshots
		 ORDER BY profile <-> $1
		 LIMIT $2`,
		vec, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSnapshots(rows)
}

func scanSnapshots(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.ProfileSnapshot, error) {
	var out []domain.ProfileSnapshot
	for rows.Next() {
		var snap domain.ProfileSnapshot
		var vec pgvector.Vector
		if err := rows.Scan(&snap.ID, &snap.DefinitionID, &vec, &snap.EffectiveRole, &snap.Source, &snap.CreatedAt); err != nil {
			return nil, err
		}
		snap.Profile = domain.ProfileFromVector(vec.Slice())
		snap.Profile.ComputedAt = snap.CreatedAt
		out = append(out, snap)
	}
	return out, rows.Err()
}
