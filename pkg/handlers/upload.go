package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// UploadResponse for POST /api/upload
type UploadResponse struct {
	SessionID string   `json:"session_id"`
	Message   string   `json:"message"`
	Columns   []string `json:"columns"`
}

// ============================================================================
// Handler
// ============================================================================

// UploadHandler handles spreadsheet upload HTTP requests.
type UploadHandler struct {
	spreadsheets services.SpreadsheetService
	maxFileBytes int64
	logger       *zap.Logger
}

// NewUploadHandler creates a new upload handler. maxFileBytes caps the
// request body size accepted per upload.
func NewUploadHandler(spreadsheets services.SpreadsheetService, maxFileBytes int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		spreadsheets: spreadsheets,
		maxFileBytes: maxFileBytes,
		logger:       logger,
	}
}

// RegisterRoutes registers the upload handler's routes on the given mux.
func (h *UploadHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/upload", h.Upload)
}

// Upload handles POST /api/upload
// Expects a multipart form with the spreadsheet under the "file" field and
// answers with the new session ID and the column names it found.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxFileBytes {
		h.logger.Warn("Upload rejected",
			zap.Int64("content_length", r.ContentLength),
			zap.Int64("limit_bytes", h.maxFileBytes),
			zap.Error(apperrors.ErrFileTooLarge))
		if err := ErrorResponse(w, http.StatusRequestEntityTooLarge, "file_too_large", "Spreadsheet exceeds the upload size limit"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			if err := ErrorResponse(w, http.StatusRequestEntityTooLarge, "file_too_large", "Spreadsheet exceeds the upload size limit"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_file", "Multipart form must carry the spreadsheet under the \"file\" field"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	defer file.Close()

	session, err := h.spreadsheets.CreateSession(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnsupportedFormat) {
			if err := ErrorResponse(w, http.StatusBadRequest, "unsupported_format", "Only .xlsx spreadsheets are supported"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrUnreadableFile) {
			if err := ErrorResponse(w, http.StatusBadRequest, "unreadable_file", "The file could not be read as an .xlsx workbook"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		if errors.Is(err, apperrors.ErrEmptySheet) {
			if err := ErrorResponse(w, http.StatusBadRequest, "empty_sheet", "The spreadsheet has no header row"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		h.logger.Error("Failed to create session from upload",
			zap.String("filename", header.Filename),
			zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "upload_failed", err.Error()); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	// Columns lists both the original names and their derived _norm
	// companions so callers can filter on either.
	response := UploadResponse{
		SessionID: session.ID,
		Message:   fmt.Sprintf("Arquivo %s recebido com sucesso.", header.Filename),
		Columns:   session.Table.ColumnNames(),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
