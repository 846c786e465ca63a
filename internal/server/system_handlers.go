package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/gthiam/portfolio-analyzer/internal/database"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	db          *database.DB
	startupTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, db *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("handler", "system").Logger(),
		db:          db,
		startupTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
	})
}

// HandleHealth reports database reachability and process resource usage
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("Database health check failed")
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":         dbStatus,
		"uptime_seconds": int64(time.Since(h.startupTime).Seconds()),
	}

	// Resource stats are best-effort; a failed probe never fails the check.
	if vm, err := mem.VirtualMemory(); err == nil {
		response["memory_used_pct"] = vm.UsedPercent
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		response["cpu_used_pct"] = percents[0]
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode health response")
	}
}
