// Package models contains domain types for planilha-engine.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnKind classifies a column by the values it holds.
type ColumnKind string

const (
	ColumnText    ColumnKind = "text"
	ColumnNumeric ColumnKind = "numeric"
)

// NormSuffix is appended to the name of derived normalized companions.
const NormSuffix = "_norm"

// Column describes one column of an uploaded sheet. Derived columns carry
// the normalized values of their Source column and are never exposed as
// query targets.
type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Derived bool       `json:"derived,omitempty"`
	Source  string     `json:"source,omitempty"`
}

// Table is the in-memory representation of one sheet: an ordered column
// list plus rows of cell text. Rows[i][j] belongs to Columns[j]. Tables are
// immutable after upload-time enrichment.
type Table struct {
	Columns []Column
	Rows    [][]string

	index map[string]int // column name -> position in Columns
}

// NewTable builds a table and its column index. Rows shorter than the
// column list are padded with empty cells; longer rows are truncated.
func NewTable(columns []Column, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		t.index[c.Name] = i
	}
	for i, row := range t.Rows {
		switch {
		case len(row) < len(columns):
			padded := make([]string, len(columns))
			copy(padded, row)
			t.Rows[i] = padded
		case len(row) > len(columns):
			t.Rows[i] = row[:len(columns)]
		}
	}
	return t
}

// ColumnIndex returns the position of a column by exact name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnByName returns the column descriptor for an exact name.
func (t *Table) ColumnByName(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

// AppendColumn adds a column with one value per existing row.
func (t *Table) AppendColumn(col Column, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("appending column %q: got %d values for %d rows", col.Name, len(values), len(t.Rows))
	}
	if _, exists := t.index[col.Name]; exists {
		return fmt.Errorf("appending column %q: name already in use", col.Name)
	}
	t.index[col.Name] = len(t.Columns)
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// ColumnNames returns every column name in order, derived companions included.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// OriginalColumns returns the non-derived columns in order.
func (t *Table) OriginalColumns() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Derived {
			out = append(out, c)
		}
	}
	return out
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Cell returns the cell at (row, column position), empty when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ParseCellNumber parses a cell as a number, accepting both plain floats
// and Brazilian formatting: "1.234,56" reads as 1234.56 and "1,5" as 1.5.
// A lone dot keeps its usual decimal meaning ("1234.56").
func ParseCellNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
