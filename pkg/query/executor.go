package query

import (
	"strings"

	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/textnorm"
)

// Default caps for list rendering.
const (
	DefaultMaxListValues = 50
	DefaultMaxListRows   = 10
)

// Limits caps how much of a list result is materialized for rendering.
// The executor still reports full counts; only the sampled values and
// rows are truncated.
type Limits struct {
	MaxListValues int
	MaxListRows   int
}

func (l Limits) withDefaults() Limits {
	if l.MaxListValues <= 0 {
		l.MaxListValues = DefaultMaxListValues
	}
	if l.MaxListRows <= 0 {
		l.MaxListRows = DefaultMaxListRows
	}
	return l
}

// Execute runs a plan against a table. It never returns an error: plans
// that lack a required column produce a clarification result, filters
// always yield a (possibly empty) subset, and unparseable cells are
// skipped during aggregation.
func Execute(t *models.Table, p Plan, limits Limits) models.QueryResult {
	limits = limits.withDefaults()
	res := models.QueryResult{Intent: p.Intent, Column: p.Column, FilterCount: len(p.Filters)}

	needsColumn := p.Intent == models.IntentSum || p.Intent == models.IntentMean
	if needsColumn && !p.HasColumn {
		res.Clarify = models.ClarifyColumn
		return res
	}
	if !p.Explicit && !p.HasColumn && len(p.Filters) == 0 {
		res.Clarify = models.ClarifyQuestion
		return res
	}

	subset := filterRows(t, p.Filters)
	res.MatchedRows = len(subset)

	switch p.Intent {
	case models.IntentCount:
		res.Count = countRows(t, subset, p)
	case models.IntentSum, models.IntentMean:
		col, _ := t.ColumnIndex(p.Column)
		sum, n := 0.0, 0
		for _, i := range subset {
			if v, ok := models.ParseCellNumber(t.Cell(i, col)); ok {
				sum += v
				n++
			}
		}
		switch {
		case n == 0:
			res.NoNumericData = true
		case p.Intent == models.IntentSum:
			res.Value = sum
		default:
			res.Value = sum / float64(n)
		}
	case models.IntentList:
		if p.HasColumn {
			listColumnValues(t, subset, p.Column, limits.MaxListValues, &res)
		} else {
			listRows(t, subset, limits.MaxListRows, &res)
		}
	}
	return res
}

func countRows(t *models.Table, subset []int, p Plan) int {
	if !p.HasColumn {
		return len(subset)
	}
	col, _ := t.ColumnIndex(p.Column)
	n := 0
	for _, i := range subset {
		if strings.TrimSpace(t.Cell(i, col)) != "" {
			n++
		}
	}
	return n
}

// listColumnValues collects distinct non-empty values in first-occurrence
// row order, sampling up to maxValues while counting all of them.
func listColumnValues(t *models.Table, subset []int, column string, maxValues int, res *models.QueryResult) {
	col, _ := t.ColumnIndex(column)
	seen := make(map[string]struct{})
	for _, i := range subset {
		v := strings.TrimSpace(t.Cell(i, col))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		res.DistinctTotal++
		if len(res.Values) < maxValues {
			res.Values = append(res.Values, v)
		}
	}
}

// listRows projects up to maxRows subset rows onto the original columns.
func listRows(t *models.Table, subset []int, maxRows int, res *models.QueryResult) {
	original := t.OriginalColumns()
	res.RowColumns = make([]string, len(original))
	indices := make([]int, len(original))
	for j, c := range original {
		res.RowColumns[j] = c.Name
		indices[j], _ = t.ColumnIndex(c.Name)
	}
	for _, i := range subset {
		if len(res.Rows) >= maxRows {
			break
		}
		row := make([]string, len(indices))
		for j, idx := range indices {
			row[j] = t.Cell(i, idx)
		}
		res.Rows = append(res.Rows, row)
	}
}

func filterRows(t *models.Table, preds []models.FilterPredicate) []int {
	rows := make([]int, 0, t.RowCount())
	for i := 0; i < t.RowCount(); i++ {
		keep := true
		for _, p := range preds {
			if !matchPredicate(t, i, p) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, i)
		}
	}
	return rows
}

// matchPredicate evaluates one predicate against one row. Numeric
// predicates compare the parsed original cell, so rows whose cell does not
// parse never match. String predicates compare normalized text, using the
// derived companion column when the upload produced one.
func matchPredicate(t *models.Table, row int, p models.FilterPredicate) bool {
	col, ok := t.ColumnIndex(p.Column)
	if !ok {
		return false
	}
	cell := t.Cell(row, col)

	if p.IsNumber {
		v, parsed := models.ParseCellNumber(cell)
		if !parsed {
			return false
		}
		switch p.Op {
		case models.OpEquals:
			return v == p.Number
		case models.OpNotEquals:
			return v != p.Number
		case models.OpGreaterThan:
			return v > p.Number
		case models.OpLessThan:
			return v < p.Number
		}
		return false
	}

	norm := normalizedCell(t, row, p.Column, cell)
	switch p.Op {
	case models.OpEquals:
		return norm == p.Value
	case models.OpNotEquals:
		return norm != p.Value
	}
	return false
}

func normalizedCell(t *models.Table, row int, column, cell string) string {
	companion, ok := t.ColumnByName(column + models.NormSuffix)
	if ok && companion.Derived && companion.Source == column {
		idx, _ := t.ColumnIndex(companion.Name)
		return t.Cell(row, idx)
	}
	return textnorm.NormalizeCell(cell)
}
