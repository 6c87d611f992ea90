package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/saisirisha1111/pitchlens/internal/analysis"
	"github.com/saisirisha1111/pitchlens/internal/contracts"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// EvaluationHandler handles startup evaluation API endpoints
type EvaluationHandler struct {
	composer *analysis.Composer
	history  *analysis.Repository
	logger   *logger.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(composer *analysis.Composer, history *analysis.Repository, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		composer: composer,
		history:  history,
		logger:   log,
	}
}

// Evaluate runs the full pipeline for one startup record
// POST /api/v1/evaluate
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var record contracts.StartupRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	result, err := h.composer.Analyze(ctx, &record)
	if err != nil {
		h.logger.WithError(err).WithField("startup", record.StartupName).Error("Evaluation failed")
		// Pipeline failures surface as the error envelope, not a 5xx body
		respondJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Recent returns the latest persisted evaluations
// GET /api/v1/evaluations?limit=20
func (h *EvaluationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.history == nil {
		respondError(w, http.StatusServiceUnavailable, "evaluation history is not configured")
		return
	}

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	summaries, err := h.history.RecentEvaluations(ctx, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list recent evaluations")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve evaluations")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(summaries),
		"evaluations": summaries,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
