package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/services"
	"github.com/nielrocha96/planilha-engine/pkg/testhelpers"
)

func newUploadMux(t *testing.T, maxFileBytes int64) (*http.ServeMux, *services.SessionStore) {
	t.Helper()

	store := services.NewSessionStore(0, 0, zap.NewNop())
	svc := services.NewSpreadsheetService(store, "", 0, zap.NewNop())
	handler := NewUploadHandler(svc, maxFileBytes, zap.NewNop())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux, store
}

func postUpload(t *testing.T, mux *http.ServeMux, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := testhelpers.MultipartFile(t, field, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()

	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestUploadHandler_Success(t *testing.T) {
	mux, store := newUploadMux(t, 20<<20)
	content := testhelpers.BuildXLSX(t,
		[]string{"marca_veiculo", "valor_nota"},
		[][]string{{"FIAT", "100"}, {"JEEP", "200"}, {"FIAT", "300"}})

	rec := postUpload(t, mux, "file", "notas.xlsx", content)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if _, err := uuid.Parse(resp.SessionID); err != nil {
		t.Errorf("expected session_id to be a UUID, got %q", resp.SessionID)
	}
	if resp.Message == "" {
		t.Error("expected a non-empty message")
	}
	want := []string{"marca_veiculo", "valor_nota", "marca_veiculo_norm"}
	if len(resp.Columns) != len(want) {
		t.Fatalf("expected columns %v, got %v", want, resp.Columns)
	}
	for i := range want {
		if resp.Columns[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], resp.Columns[i])
		}
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 stored session, got %d", store.Count())
	}
}

func TestUploadHandler_MissingFileField(t *testing.T) {
	mux, _ := newUploadMux(t, 20<<20)
	content := testhelpers.BuildXLSX(t, []string{"coluna"}, nil)

	rec := postUpload(t, mux, "arquivo", "notas.xlsx", content)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Error != "missing_file" {
		t.Errorf("expected error 'missing_file', got %q", body.Error)
	}
}

func TestUploadHandler_UnsupportedExtension(t *testing.T) {
	mux, store := newUploadMux(t, 20<<20)
	content := testhelpers.BuildXLSX(t, []string{"coluna"}, nil)

	rec := postUpload(t, mux, "file", "notas.csv", content)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Error != "unsupported_format" {
		t.Errorf("expected error 'unsupported_format', got %q", body.Error)
	}
	if store.Count() != 0 {
		t.Errorf("expected no stored sessions, got %d", store.Count())
	}
}

func TestUploadHandler_UnreadableFile(t *testing.T) {
	mux, _ := newUploadMux(t, 20<<20)

	rec := postUpload(t, mux, "file", "notas.xlsx", []byte("this is not a spreadsheet"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Error != "unreadable_file" {
		t.Errorf("expected error 'unreadable_file', got %q", body.Error)
	}
}

func TestUploadHandler_FileTooLarge(t *testing.T) {
	mux, _ := newUploadMux(t, 64)
	content := testhelpers.BuildXLSX(t, []string{"coluna"}, [][]string{{"valor"}})

	rec := postUpload(t, mux, "file", "notas.xlsx", content)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
	if body := decodeErrorBody(t, rec); body.Error != "file_too_large" {
		t.Errorf("expected error 'file_too_large', got %q", body.Error)
	}
}

func TestUploadHandler_MethodNotAllowed(t *testing.T) {
	mux, _ := newUploadMux(t, 20<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
