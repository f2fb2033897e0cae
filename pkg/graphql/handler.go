package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"go.uber.org/zap"
)

// Handler serves GraphQL over HTTP: POST with a JSON body, or GET with
// ?query=. A GET without a query serves the Playground when enabled.
type Handler struct {
	service    *Service
	playground http.Handler
	logger     *zap.Logger
}

// NewHandler creates the HTTP handler. path is the public endpoint the
// Playground should send queries to.
func NewHandler(service *Service, path string, enablePlayground bool, logger *zap.Logger) *Handler {
	h := &Handler{
		service: service,
		logger:  logger.Named("graphql.http"),
	}
	if enablePlayground {
		h.playground = playground.Handler("Pocket Morties", path)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request

	switch r.Method {
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
		if req.Query == "" {
			if h.playground != nil {
				h.playground.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusBadRequest, "query parameter is required")
			return
		}
		if vars := r.URL.Query().Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				writeError(w, http.StatusBadRequest, "variables must be a JSON object")
				return
			}
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "request body must be a JSON object")
			return
		}
		if req.Query == "" {
			writeError(w, http.StatusBadRequest, "query is required")
			return
		}
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := h.service.Do(r.Context(), req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("Failed to encode GraphQL response", zap.Error(err))
	}
}

// writeError writes a GraphQL-shaped error body for transport-level failures.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"errors": []map[string]string{{"message": message}},
	})
}
