package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/logging"
	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// AskRequest for POST /api/ask
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// AskResponse for POST /api/ask
type AskResponse struct {
	Answer  string              `json:"answer"`
	History []models.QAExchange `json:"history"`
}

// ============================================================================
// Handler
// ============================================================================

// AskHandler handles natural-language question HTTP requests.
type AskHandler struct {
	questions services.QuestionService
	logger    *zap.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(questions services.QuestionService, logger *zap.Logger) *AskHandler {
	return &AskHandler{questions: questions, logger: logger}
}

// RegisterRoutes registers the ask handler's routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.Ask)
}

// Ask handles POST /api/ask
// Answers one question against the session's table and returns the updated
// conversation history, newest exchange last.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if strings.TrimSpace(req.SessionID) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_session_id", "session_id is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_question", "question is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	answer, history, err := h.questions.Ask(r.Context(), req.SessionID, req.Question)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			if err := ErrorResponse(w, http.StatusNotFound, "session_not_found", "Session not found or expired"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to answer question",
			zap.String("session_id", req.SessionID),
			zap.String("question", logging.TruncateQuestion(req.Question)),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "ask_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := AskResponse{
		Answer:  answer,
		History: history,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
