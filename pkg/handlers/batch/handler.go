package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/bill-forge/pkg/adapters"
	"github.com/de-tools/bill-forge/pkg/models/api"
	batchstore "github.com/de-tools/bill-forge/pkg/store/sqlite/batch"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	store batchstore.Store
}

func NewHandler(store batchstore.Store) *Handler {
	return &Handler{store: store}
}

// ListRuns returns the persisted batch reports, newest first, without
// per-file records.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	runs, err := h.store.GetRuns(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list batch runs")
		http.Error(w, "failed to list batch runs", http.StatusInternalServerError)
		return
	}

	response := make([]api.BatchReport, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapStoreRunToApiReport(run, nil))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode batch runs")
	}
}

// GetRun returns one batch report including its per-file records.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	runID := chi.URLParam(r, "run")

	run, err := h.store.GetRun(ctx, runID)
	if errors.Is(err, batchstore.ErrRunNotFound) {
		logger.Warn().Str("run", runID).Msg("batch run not found")
		http.Error(w, "batch run not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("failed to load batch run")
		http.Error(w, "failed to load batch run", http.StatusInternalServerError)
		return
	}
	records, err := h.store.GetRecords(ctx, runID)
	if err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("failed to load batch records")
		http.Error(w, "failed to load batch records", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapStoreRunToApiReport(*run, records)); err != nil {
		logger.Error().Err(err).Str("run", runID).Msg("failed to encode batch run")
	}
}
