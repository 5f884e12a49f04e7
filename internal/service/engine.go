package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/store"
	"go.uber.org/zap"
)

var (
	ErrAssertionNotFound = errors.New("assertion not found")
	ErrDefinitionIDEmpty = errors.New("definition id is required")
	ErrNoEdgeProvider    = errors.New("edge provider is required for drift detection")
)

// SuggestionConfidenceThreshold is the minimum classification confidence
// below which no assertion is suggested.
const SuggestionConfidenceThreshold = 0.5

// EdgeProvider returns the edges touching a definition, for batch drift
// detection. Supplied by the hosting catalog.
type EdgeProvider func(definitionID string) []domain.Edge

// Engine orchestrates profile derivation, classification, assertion
// reconciliation and risk pricing. It owns the assertion store; everything
// else is pure computation over caller-supplied data.
//
// Construct one per hosting application and inject it; there is no global
// instance.
type Engine struct {
	assertions domain.AssertionStore
	snapshots  domain.SnapshotStore
	logger     *zap.Logger
}

func NewEngine(assertions domain.AssertionStore, logger *zap.Logger) *Engine {
	return &Engine{
		assertions: assertions,
		logger:     logger,
	}
}

// SetSnapshotStore enables profile history: every resolution is recorded as
// a snapshot. Optional; resolution never fails because a snapshot did.
func (e *Engine) SetSnapshotStore(s domain.SnapshotStore) {
	e.snapshots = s
}

// SetAssertion validates and stores an assertion for a definition,
// replacing any prior value wholesale.
func (e *Engine) SetAssertion(ctx context.Context, definitionID string, params domain.AssertedRoleParams) (*domain.AssertedRole, error) {
	if definitionID == "" {
		return nil, ErrDefinitionIDEmpty
	}
	asserted, err := domain.NewAssertedRole(params)
	if err != nil {
		return nil, err
	}
	if err := e.assertions.Set(ctx, definitionID, asserted); err != nil {
		return nil, fmt.Errorf("store assertion: %w", err)
	}

	e.logger.Info("assertion stored",
		zap.String("definition_id", definitionID),
		zap.String("role", string(asserted.Role)),
		zap.String("asserted_by", string(asserted.AssertedBy)),
		zap.String("scope", string(asserted.Scope)))

	return asserted, nil
}

func (e *Engine) GetAssertion(ctx context.Context, definitionID string) (*domain.AssertedRole, error) {
	asserted, err := e.assertions.Get(ctx, definitionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAssertionNotFound
		}
		return nil, err
	}
	return asserted, nil
}

func (e *Engine) ClearAssertion(ctx context.Context, definitionID string) error {
	if err := e.assertions.Clear(ctx, definitionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAssertionNotFound
		}
		return err
	}
	e.logger.Info("assertion cleared", zap.String("definition_id", definitionID))
	return nil
}

// ComputeProfile runs the full resolution pipeline for one definition and
// returns the record stamped with the definition id and resolution time.
func (e *Engine) ComputeProfile(ctx context.Context, def domain.Definition, edges []domain.Edge) (*domain.ResolutionRecord, error) {
	if def.ID == "" {
		return nil, ErrDefinitionIDEmpty
	}

	asserted, err := e.assertionOrNil(ctx, def.ID)
	if err != nil {
		return nil, err
	}

	record := ResolveEffectiveRole(def, edges, asserted)
	record.DefinitionID = def.ID
	record.ResolvedAt = time.Now().UTC()

	e.recordSnapshot(ctx, &record)

	return &record, nil
}

// ComputeEdgeRisk prices the risk of an edge touching the target
// definition under the target's resolved role.
func (e *Engine) ComputeEdgeRisk(ctx context.Context, edge domain.Edge, target domain.Definition, edges []domain.Edge) (*domain.EdgeRisk, error) {
	if target.ID == "" {
		return nil, ErrDefinitionIDEmpty
	}
	asserted, err := e.assertionOrNil(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	risk := ComputeEdgeRisk(edge, target, edges, asserted)
	return &risk, nil
}

// DetectDrift resolves every stored assertion against its current
// definition and edges and collects all soft and hard drift into a flat
// report. Definitions missing from the supplied map are skipped: drift is
// only meaningful against current observations.
func (e *Engine) DetectDrift(ctx context.Context, definitions map[string]domain.Definition, edgesFor EdgeProvider) ([]domain.DriftReport, error) {
	if edgesFor == nil {
		return nil, ErrNoEdgeProvider
	}

	assertions, err := e.assertions.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assertions: %w", err)
	}

	reports := make([]domain.DriftReport, 0)
	for definitionID, asserted := range assertions {
		def, ok := definitions[definitionID]
		if !ok {
			e.logger.Debug("skipping drift check for unknown definition",
				zap.String("definition_id", definitionID))
			continue
		}
		a := asserted
		record := ResolveEffectiveRole(def, edgesFor(definitionID), &a)
		if record.Drift == nil {
			continue
		}
		reports = append(reports, domain.DriftReport{
			DefinitionID: definitionID,
			Drift:        *record.Drift,
			DetectedAt:   time.Now().UTC(),
		})
	}

	if len(reports) > 0 {
		e.logger.Info("drift detected", zap.Int("reports", len(reports)))
	}
	return reports, nil
}

// SuggestAssertion classifies the definition's observed behavior and, when
// confident enough, proposes a system assertion with that role's default
// conditions. A nil suggestion is the normal outcome for mixed or
// low-confidence classifications, not an error.
func (e *Engine) SuggestAssertion(def domain.Definition, edges []domain.Edge) *domain.AssertedRole {
	inferred := InferRole(DeriveProfile(def, edges))
	if inferred.Role == domain.RoleMixed || inferred.Confidence < SuggestionConfidenceThreshold {
		return nil
	}

	reason := fmt.Sprintf("classified as %s with confidence %.2f (distance %.2f to canonical profile)",
		inferred.Role, inferred.Confidence, inferred.Distances[inferred.Role])

	suggested, err := domain.NewAssertedRole(domain.AssertedRoleParams{
		Role:       inferred.Role,
		AssertedBy: domain.AssertedBySystem,
		Confidence: inferred.Confidence,
		Conditions: domain.DefaultConditions(inferred.Role),
		Scope:      domain.ScopeGlobal,
		Reason:     reason,
	})
	if err != nil {
		// Defaults are validated at init; this cannot happen with a named role.
		e.logger.Error("failed to build suggestion", zap.Error(err))
		return nil
	}
	return suggested
}

// ExportAssertions serializes the assertion map to a plain keyed form.
// Importing the result into a fresh engine is lossless.
func (e *Engine) ExportAssertions(ctx context.Context) (map[string]domain.AssertedRole, error) {
	return e.assertions.All(ctx)
}

// ImportAssertions validates and replaces the entire assertion map.
func (e *Engine) ImportAssertions(ctx context.Context, data map[string]domain.AssertedRole) error {
	validated := make(map[string]domain.AssertedRole, len(data))
	for definitionID, a := range data {
		if definitionID == "" {
			return ErrDefinitionIDEmpty
		}
		rebuilt, err := domain.NewAssertedRole(domain.AssertedRoleParams{
			Role:       a.Role,
			AssertedBy: a.AssertedBy,
			Confidence: a.Confidence,
			Conditions: a.Conditions,
			Scope:      a.Scope,
			Timestamp:  a.Timestamp,
			Reason:     a.Reason,
		})
		if err != nil {
			return fmt.Errorf("import assertion for %q: %w", definitionID, err)
		}
		validated[definitionID] = *rebuilt
	}

	if err := e.assertions.ReplaceAll(ctx, validated); err != nil {
		return fmt.Errorf("replace assertions: %w", err)
	}
	e.logger.Info("assertions imported", zap.Int("count", len(validated)))
	return nil
}

func (e *Engine) assertionOrNil(ctx context.Context, definitionID string) (*domain.AssertedRole, error) {
	asserted, err := e.assertions.Get(ctx, definitionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assertion: %w", err)
	}
	return asserted, nil
}

func (e *Engine) recordSnapshot(ctx context.Context, record *domain.ResolutionRecord) {
	if e.snapshots == nil {
		return
	}
	snapshot := &domain.ProfileSnapshot{
		ID:            uuid.New(),
		DefinitionID:  record.DefinitionID,
		Profile:       record.BehaviorProfile,
		EffectiveRole: record.EffectiveRole,
		Source:        record.Source,
		CreatedAt:     record.ResolvedAt,
	}
	if err := e.snapshots.Save(ctx, snapshot); err != nil {
		e.logger.Warn("failed to record profile snapshot",
			zap.String("definition_id", record.DefinitionID),
			zap.Error(err))
	}
}
