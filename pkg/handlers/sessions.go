package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/services"
)

// SessionResponse for GET /api/sessions/{sid}
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Filename  string    `json:"filename"`
	Rows      int       `json:"rows"`
	Columns   []string  `json:"columns"`
	Questions int       `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse for GET /api/sessions/{sid}/history
type HistoryResponse struct {
	SessionID string              `json:"session_id"`
	History   []models.QAExchange `json:"history"`
}

// SessionHandler handles session lifecycle HTTP requests.
type SessionHandler struct {
	store  *services.SessionStore
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store *services.SessionStore, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{store: store, logger: logger}
}

// RegisterRoutes registers the session handler's routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sessions/{sid}", h.Get)
	mux.HandleFunc("DELETE /api/sessions/{sid}", h.Delete)
	mux.HandleFunc("GET /api/sessions/{sid}/history", h.History)
}

// Get handles GET /api/sessions/{sid}
// Looking a session up also refreshes its last access time.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	sess, err := h.store.Get(sid)
	if err != nil {
		h.respondNotFoundOr500(w, sid, err)
		return
	}
	history, err := h.store.History(sid)
	if err != nil {
		h.respondNotFoundOr500(w, sid, err)
		return
	}

	response := SessionResponse{
		SessionID: sess.ID,
		Filename:  sess.Filename,
		Rows:      sess.Table.RowCount(),
		Columns:   sess.Table.ColumnNames(),
		Questions: len(history),
		CreatedAt: sess.CreatedAt,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/sessions/{sid}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	if err := h.store.Delete(sid); err != nil {
		h.respondNotFoundOr500(w, sid, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// History handles GET /api/sessions/{sid}/history
// Reading history does not refresh the session's last access time.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	history, err := h.store.History(sid)
	if err != nil {
		h.respondNotFoundOr500(w, sid, err)
		return
	}

	response := HistoryResponse{
		SessionID: sid,
		History:   history,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *SessionHandler) respondNotFoundOr500(w http.ResponseWriter, sid string, err error) {
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		if err := ErrorResponse(w, http.StatusNotFound, "session_not_found", "Session not found or expired"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	h.logger.Error("Session lookup failed",
		zap.String("session_id", sid),
		zap.Error(err))
	if err := ErrorResponse(w, http.StatusInternalServerError, "session_lookup_failed", err.Error()); err != nil {
		h.logger.Error("Failed to write error response", zap.Error(err))
	}
}
