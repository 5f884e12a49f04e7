package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/service"
)

// DriftHandler exposes batch drift detection over all stored assertions.
type DriftHandler struct {
	engine *service.Engine
}

func NewDriftHandler(engine *service.Engine) *DriftHandler {
	return &DriftHandler{engine: engine}
}

type driftRequest struct {
	Definitions map[string]domain.Definition `json:"definitions"`
	Edges       map[string][]domain.Edge     `json:"edges"`
}

type driftResponse struct {
	Reports []domain.DriftReport `json:"reports"`
	Checked int                  `json:"checked"`
}

func (h *DriftHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req driftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reports, err := h.engine.DetectDrift(r.Context(), req.Definitions, func(definitionID string) []domain.Edge {
		return req.Edges[definitionID]
	})
	if err != nil {
		if errors.Is(err, service.ErrNoEdgeProvider) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to detect drift")
		return
	}

	writeJSON(w, http.StatusOK, driftResponse{
		Reports: reports,
		Checked: len(req.Definitions),
	})
}
