package handlers

import (
	"net/http"

	"github.com/saisirisha1111/pitchlens/internal/benchmark"
	"github.com/saisirisha1111/pitchlens/pkg/logger"
)

// BenchmarkHandler handles benchmark lookup API endpoints
type BenchmarkHandler struct {
	resolver *benchmark.Resolver
	logger   *logger.Logger
}

// NewBenchmarkHandler creates a new benchmark handler
func NewBenchmarkHandler(resolver *benchmark.Resolver, log *logger.Logger) *BenchmarkHandler {
	return &BenchmarkHandler{
		resolver: resolver,
		logger:   log,
	}
}

// Get resolves benchmarks for a sector/stage pair
// GET /api/v1/benchmarks?sector=SaaS&stage=seed
func (h *BenchmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sector := r.URL.Query().Get("sector")
	stage := r.URL.Query().Get("stage")

	benchmarks, err := h.resolver.Resolve(ctx, sector, stage)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"sector": sector,
			"stage":  stage,
		}).Error("Benchmark resolution failed")
		respondError(w, http.StatusInternalServerError, "Failed to resolve benchmarks")
		return
	}

	respondJSON(w, http.StatusOK, benchmarks)
}
