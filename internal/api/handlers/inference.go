package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/service"
)

// InferenceHandler exposes profile derivation, role resolution and
// assertion suggestion.
type InferenceHandler struct {
	engine *service.Engine
}

func NewInferenceHandler(engine *service.Engine) *InferenceHandler {
	return &InferenceHandler{engine: engine}
}

type inferenceRequest struct {
	Definition domain.Definition `json:"definition"`
	Edges      []domain.Edge     `json:"edges"`
}

// Profile derives the behavior profile and classifies it, without
// consulting stored assertions.
func (h *InferenceHandler) Profile(w http.ResponseWriter, r *http.Request) {
	var req inferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Definition.ID == "" {
		writeError(w, http.StatusBadRequest, "definition.id is required")
		return
	}

	profile := service.DeriveProfile(req.Definition, req.Edges)
	inferred := service.InferRole(profile)
	writeJSON(w, http.StatusOK, inferred)
}

// Resolve runs the full resolution pipeline, assertion included.
func (h *InferenceHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req inferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.engine.ComputeProfile(r.Context(), req.Definition, req.Edges)
	if err != nil {
		if errors.Is(err, service.ErrDefinitionIDEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to resolve role")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Suggest proposes a system assertion for the definition. 204 means the
// classification was mixed or not confident enough, which is a normal
// outcome.
func (h *InferenceHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req inferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Definition.ID == "" {
		writeError(w, http.StatusBadRequest, "definition.id is required")
		return
	}

	suggested := h.engine.SuggestAssertion(req.Definition, req.Edges)
	if suggested == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, suggested)
}
