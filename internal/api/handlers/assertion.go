package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ontiq/ontoscope/internal/domain"
	"github.com/ontiq/ontoscope/internal/service"
)

// AssertionHandler exposes assertion CRUD plus export/import.
type AssertionHandler struct {
	engine *service.Engine
}

func NewAssertionHandler(engine *service.Engine) *AssertionHandler {
	return &AssertionHandler{engine: engine}
}

type setAssertionRequest struct {
	Role       string             `json:"role"`
	AssertedBy string             `json:"asserted_by"`
	Confidence float64            `json:"confidence"`
	Conditions []domain.Condition `json:"conditions,omitempty"`
	Scope      string             `json:"scope,omitempty"`
	Timestamp  *time.Time         `json:"timestamp,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

func (h *AssertionHandler) Set(w http.ResponseWriter, r *http.Request) {
	definitionID := chi.URLParam(r, "id")

	var req setAssertionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params := domain.AssertedRoleParams{
		Role:       domain.Role(req.Role),
		AssertedBy: domain.AssertedBy(req.AssertedBy),
		Confidence: req.Confidence,
		Conditions: req.Conditions,
		Scope:      domain.AssertionScope(req.Scope),
		Reason:     req.Reason,
	}
	if req.Timestamp != nil {
		params.Timestamp = *req.Timestamp
	}

	asserted, err := h.engine.SetAssertion(r.Context(), definitionID, params)
	if err != nil {
		if errors.Is(err, service.ErrDefinitionIDEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		var status = http.StatusBadRequest
		if !isValidationError(err) {
			status = http.StatusInternalServerError
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, asserted)
}

func (h *AssertionHandler) Get(w http.ResponseWriter, r *http.Request) {
	asserted, err := h.engine.GetAssertion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrAssertionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get assertion")
		return
	}
	writeJSON(w, http.StatusOK, asserted)
}

func (h *AssertionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.ClearAssertion(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, service.ErrAssertionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to clear assertion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export returns the whole assertion map in the interchange format.
func (h *AssertionHandler) Export(w http.ResponseWriter, r *http.Request) {
	assertions, err := h.engine.ExportAssertions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to export assertions")
		return
	}
	writeJSON(w, http.StatusOK, assertions)
}

// Import replaces the whole assertion map from the interchange format.
func (h *AssertionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var data map[string]domain.AssertedRole
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.engine.ImportAssertions(r.Context(), data); err != nil {
		if isValidationError(err) || errors.Is(err, service.ErrDefinitionIDEmpty) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to import assertions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": len(data)})
}

// isValidationError distinguishes construction failures (caller's fault)
// from storage failures. Construction errors come out of NewAssertedRole
// before any store call.
func isValidationError(err error) bool {
	var domainErr *domain.ValidationError
	return errors.As(err, &domainErr)
}
