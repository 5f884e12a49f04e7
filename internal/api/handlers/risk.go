package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/service"
)

// RiskHandler exposes susceptibility lookups and edge risk pricing.
type RiskHandler struct {
	engine *service.Engine
}

func NewRiskHandler(engine *service.Engine) *RiskHandler {
	return &RiskHandler{engine: engine}
}

type edgeRiskRequest struct {
	Edge             domain.Edge       `json:"edge"`
	TargetDefinition domain.Definition `json:"target_definition"`
	Edges            []domain.Edge     `json:"edges"`
}

// EdgeRisk prices the risk of one edge against the target definition's
// resolved role.
func (h *RiskHandler) EdgeRisk(w http.ResponseWriter, r *http.Request) {
	var req edgeRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	risk, err := h.engine.ComputeEdgeRisk(r.Context(), req.Edge, req.TargetDefinition, req.Edges)
	if err != nil {
		if errors.Is(err, service.ErrDefinitionIDEmpty) {
			writeError(w, http.StatusBadRequest, "target_definition.id is required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compute edge risk")
		return
	}

	writeJSON(w, http.StatusOK, risk)
}

// Susceptibility is a raw table lookup. Unknown roles or edge types answer
// with the neutral multiplier rather than an error.
func (h *RiskHandler) Susceptibility(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))
	edgeType := domain.EdgeType(chi.URLParam(r, "edgeType"))

	s := service.GetSusceptibility(role, edgeType)
	writeJSON(w, http.StatusOK, map[string]any{
		"role":            role,
		"edge_type":       edgeType,
		"risk_multiplier": s.RiskMultiplier,
		"explanation":     s.Explanation,
	})
}
