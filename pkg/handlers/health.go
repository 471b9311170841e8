package handlers

import (
	"net/http"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/config"
	"github.com/nielrocha96/planilha-engine/pkg/services"
)

// PingResponse reports runtime details plus the number of spreadsheet
// sessions currently held in memory.
type PingResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"go_version"`
	Hostname    string `json:"hostname"`
	Sessions    int    `json:"sessions"`
}

// HealthHandler serves the liveness and ping endpoints.
type HealthHandler struct {
	store  *services.SessionStore
	cfg    *config.Config
	logger *zap.Logger
}

func NewHealthHandler(store *services.SessionStore, cfg *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the health endpoints on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ping", h.Ping)
}

// Health answers load balancer liveness probes with a bare "ok".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ping reports service metadata and the live session count.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	resp := PingResponse{
		Status:      "ok",
		Service:     "planilha-engine",
		Version:     h.cfg.Version,
		Environment: h.cfg.Env,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
		Sessions:    h.store.Count(),
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
