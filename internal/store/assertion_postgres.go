package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ontiq/ontoscope/internal/domain"
)

// AssertionPostgresStore persists assertions in Postgres so they survive
// restarts of the hosting application. Conditions are stored as JSONB.
type AssertionPostgresStore struct {
	db *pgxpool.Pool
}

func NewAssertionPostgresStore(db *pgxpool.Pool) *AssertionPostgresStore {
	return &AssertionPostgresStore{db: db}
}

func (s *AssertionPostgresStore) Set(ctx context.Context, definitionID string, role *domain.AssertedRole) error {
	conditions, err := json.Marshal(role.Conditions)
	if err != nil {
		return fmt.Errorf("marshal conditions: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO assertions (definition_id, role, asserted_by, confidence, conditions, scope, asserted_at, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (definition_id) DO UPDATE SET
		   role = EXCLUDED.role, asserted_by = EXCLUDED.asserted_by, confidence = EXCLUDED.confidence,
		   conditions = EXCLUDED.conditions, scope = EXCLUDED.scope, asserted_at = EXCLUDED.asserted_at,
		   reason = EXCLUDED.reason`,
		definitionID, role.Role, role.AssertedBy, role.Confidence, conditions, role.Scope, role.Timestamp, role.Reason,
	)
	return err
}

func (s *AssertionPostgresStore) Get(ctx context.Context, definitionID string) (*domain.AssertedRole, error) {
	row := s.db.QueryRow(ctx,
		`SELECT role, asserted_by, confidence, conditions, scope, asserted_at, reason
		 FROM assertions WHERE definition_id = $1`,
		definitionID,
	)
	a, err := scanAssertion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AssertionPostgresStore) Clear(ctx context.Context, definitionID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM assertions WHERE definition_id = $1`, definitionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AssertionPostgresStore) All(ctx context.Context) (map[string]domain.AssertedRole, error) {
	rows, err := s.db.Query(ctx,
		`SELECT definition_id, role, asserted_by, confidence, conditions, scope, asserted_at, reason
		 FROM assertions`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.AssertedRole)
	for rows.Next() {
		var definitionID string
		var a domain.AssertedRole
		var conditions []byte
		if err := rows.Scan(&definitionID, &a.Role, &a.AssertedBy, &a.Confidence, &conditions, &a.Scope, &a.Timestamp, &a.Reason); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(conditions, &a.Conditions); err != nil {
			return nil, fmt.Errorf("unmarshal conditions for %q: %w", definitionID, err)
		}
		out[definitionID] = a
	}
	return out, rows.Err()
}

// ReplaceAll swaps the whole assertion set in one transaction.
func (s *AssertionPostgresStore) ReplaceAll(ctx context.Context, assertions map[string]domain.AssertedRole) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM assertions`); err != nil {
		return err
	}
	for definitionID, a := range assertions {
		conditions, err := json.Marshal(a.Conditions)
		if err != nil {
			return fmt.Errorf("marshal conditions for %q: %w", definitionID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO assertions (definition_id, role, asserted_by, confidence, conditions, scope, asserted_at, reason)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			definitionID, a.Role, a.AssertedBy, a.Confidence, conditions, a.Scope, a.Timestamp, a.Reason,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssertion(row rowScanner) (*domain.AssertedRole, error) {
	var a domain.AssertedRole
	var conditions []byte
	if err := row.Scan(&a.Role, &a.AssertedBy, &a.Confidence, &conditions, &a.Scope, &a.Timestamp, &a.Reason); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(conditions, &a.Conditions); err != nil {
		return nil, fmt.Errorf("unmarshal conditions: %w", err)
	}
	return &a, nil
}
