// Package workbook turns uploaded .xlsx files into in-memory tables.
package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nielrocha96/planilha-engine/pkg/apperrors"
	"github.com/nielrocha96/planilha-engine/pkg/models"
)

// Read parses a workbook and returns its rows as a table. The first row of
// the chosen sheet (the file's first sheet when sheet is empty) is the
// header; maxRows > 0 caps the number of data rows read. Column kinds are
// inferred from the data: a column is numeric when it has at least one
// non-empty cell and every non-empty cell parses as a number.
func Read(r io.Reader, sheet string, maxRows int) (*models.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreadableFile, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.ErrEmptySheet
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", apperrors.ErrUnreadableFile, sheet, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, apperrors.ErrEmptySheet
	}

	names := headerNames(rows[0])
	data := rows[1:]
	if maxRows > 0 && len(data) > maxRows {
		data = data[:maxRows]
	}

	columns := make([]models.Column, len(names))
	for j, name := range names {
		columns[j] = models.Column{Name: name, Kind: inferKind(data, j)}
	}
	return models.NewTable(columns, data), nil
}

// headerNames trims header cells, names blank ones coluna_N by position,
// and disambiguates duplicates with _2, _3 suffixes.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	used := make(map[string]struct{}, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("coluna_%d", i+1)
		}
		base := name
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = struct{}{}
		names[i] = name
	}
	return names
}

func inferKind(rows [][]string, col int) models.ColumnKind {
	nonEmpty := 0
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		nonEmpty++
		if _, ok := models.ParseCellNumber(cell); !ok {
			return models.ColumnText
		}
	}
	if nonEmpty == 0 {
		return models.ColumnText
	}
	return models.ColumnNumeric
}
