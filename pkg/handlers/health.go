package handlers

import (
	"net/http"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/config"
)

// ServiceName is reported by /ping.
const ServiceName = "pocket-morties"

// PingResponse contains service status and version information.
type PingResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Service     string `json:"service"`
	GoVersion   string `json:"go_version"`
	Hostname    string `json:"hostname"`
	Environment string `json:"environment"`
	GraphQLPath string `json:"graphql_path"`
	ChatPath    string `json:"chat_path"`
	LLMProvider string `json:"llm_provider"`
	MCPEnabled  bool   `json:"mcp_enabled"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler with the given configuration.
func NewHealthHandler(cfg *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health handles GET /health. It never touches the dataset or the
// completion service, so it stays cheap enough for load balancer health checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Ping handles GET /ping. It reports build details and the configured
// routes, never credentials.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	// Lambda sandboxes may not expose a hostname.
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	response := PingResponse{
		Status:      "ok",
		Version:     h.cfg.Version,
		Service:     ServiceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
		Environment: h.cfg.Env,
		GraphQLPath: h.cfg.GraphQL.Path,
		ChatPath:    h.cfg.Chat.Path,
		LLMProvider: h.cfg.LLM.Provider,
		MCPEnabled:  h.cfg.MCP.Enabled,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
