package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ontiq/ontoscope/internal/domain"
)

// SnapshotHandler serves profile snapshot history. Only mounted when a
// snapshot store is configured.
type SnapshotHandler struct {
	snapshots domain.SnapshotStore
}

func NewSnapshotHandler(snapshots domain.SnapshotStore) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots}
}

// List returns a definition's snapshot history, newest first. With
// ?near=w,x,y,z it instead returns the stored snapshots closest to that
// profile vector across all definitions.
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	if near := r.URL.Query().Get("near"); near != "" {
		profile, ok := parseProfileVector(near)
		if !ok {
			writeError(w, http.StatusBadRequest, "near must be four comma-separated numbers in [0,1]")
			return
		}
		snapshots, err := h.snapshots.Nearest(r.Context(), profile, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to query snapshots")
			return
		}
		writeJSON(w, http.StatusOK, snapshots)
		return
	}

	definitionID := chi.URLParam(r, "id")
	snapshots, err := h.snapshots.ListByDefinition(r.Context(), definitionID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func parseProfileVector(s string) (domain.BehaviorProfile, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.BehaviorProfile{}, false
	}
	vec := make([]float32, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil || f < 0 || f > 1 {
			return domain.BehaviorProfile{}, false
		}
		vec[i] = float32(f)
	}
	return domain.ProfileFromVector(vec), true
}
