package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/chat"
	"github.com/doctorew/pocket-morties/pkg/logging"
)

// maxChatBodyBytes bounds the request body of the chat endpoint.
const maxChatBodyBytes = 64 << 10

// ChatService answers one chat message.
type ChatService interface {
	Handle(ctx context.Context, text string) (*chat.Response, error)
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query string `json:"query" validate:"required,max=4000"`
}

// ChatHandler serves the REST chat endpoint.
type ChatHandler struct {
	service  ChatService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewChatHandler creates a chat handler around service.
func NewChatHandler(service ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.Named("chat.http"),
	}
}

// RegisterRoutes registers the chat endpoint at path.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux, path string) {
	mux.HandleFunc("POST "+path, h.Chat)
}

// Chat handles POST {path}. A missing or blank query is a 400; any failure
// while answering is a 500 whose details stay in the logs.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithContext(r.Context(), h.logger)

	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body too large")
			return
		}
		h.writeError(w, http.StatusBadRequest, CodeBadRequest, "Request body must be a JSON object")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, CodeQueryRequired, validationMessage(err))
		return
	}

	resp, err := h.service.Handle(r.Context(), req.Query)
	if err != nil {
		logger.Error("Chat request failed",
			zap.String("query", logging.TruncateString(req.Query, logging.MaxQueryLogLength)),
			zap.String("error", logging.SanitizeError(err)))
		h.writeError(w, http.StatusInternalServerError, CodeInternalError, "Internal Server Error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error("Failed to encode chat response", zap.Error(err))
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := ErrorResponse(w, status, code, message); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "max":
			return "Query is too long"
		}
	}
	return "Query not provided"
}
