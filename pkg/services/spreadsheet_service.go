package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/textnorm"
	"github.com/nielrocha96/planilha-engine/pkg/workbook"
)

// SpreadsheetService turns uploaded .xlsx files into query-ready sessions.
type SpreadsheetService interface {
	// CreateSession reads a workbook, enriches textual columns with their
	// normalized companions, and registers a fresh session for it.
	CreateSession(ctx context.Context, filename string, r io.Reader) (*models.Session, error)
}

type spreadsheetService struct {
	store   *SessionStore
	sheet   string
	maxRows int
	logger  *zap.Logger
}

// NewSpreadsheetService creates a spreadsheet service. sheet selects which
// sheet to read ("" means the file's first sheet); maxRows caps how many
// data rows are loaded per upload.
func NewSpreadsheetService(store *SessionStore, sheet string, maxRows int, logger *zap.Logger) SpreadsheetService {
	return &spreadsheetService{
		store:   store,
		sheet:   sheet,
		maxRows: maxRows,
		logger:  logger,
	}
}

func (s *spreadsheetService) CreateSession(ctx context.Context, filename string, r io.Reader) (*models.Session, error) {
	if !strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".xlsx") {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, filename)
	}

	table, err := workbook.Read(r, s.sheet, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("reading workbook %q: %w", filename, err)
	}

	enrichWithNormalizedColumns(table, s.logger)

	sess := s.store.Create(filename, table)
	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("filename", filename),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", len(table.Columns)))
	return sess, nil
}

// enrichWithNormalizedColumns appends a derived companion with normalized
// values for every textual column. Numeric columns get none, and a column
// whose companion name is already taken keeps its original data untouched.
func enrichWithNormalizedColumns(t *models.Table, logger *zap.Logger) {
	for _, col := range t.OriginalColumns() {
		if col.Kind != models.ColumnText {
			continue
		}
		name := col.Name + models.NormSuffix
		values := make([]string, t.RowCount())
		idx, _ := t.ColumnIndex(col.Name)
		for i := range values {
			values[i] = textnorm.NormalizeCell(t.Cell(i, idx))
		}
		err := t.AppendColumn(models.Column{
			Name:    name,
			Kind:    models.ColumnText,
			Derived: true,
			Source:  col.Name,
		}, values)
		if err != nil {
			logger.Warn("skipping normalized companion", zap.String("column", col.Name), zap.Error(err))
		}
	}
}

