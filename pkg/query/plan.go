// Package query implements the question answering pipeline: intent
// classification, column resolution, filter extraction, plan execution
// against an in-memory table, and answer rendering.
package query

import (
	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/textnorm"
)

// Plan is a fully resolved question: what to compute, over which column,
// on which row subset.
type Plan struct {
	Intent    models.Intent
	Explicit  bool
	Column    string
	HasColumn bool
	Filters   []models.FilterPredicate
}

// BuildPlan runs the resolution pipeline over one raw question. Intent and
// target column are read from the text before the first filter marker,
// predicates from the text after it. Nothing here fails: unresolvable
// pieces leave their Plan fields zeroed and the executor answers with a
// clarification when too little was identified.
func BuildPlan(t *models.Table, question string, synonyms []Synonym, cutoff float64) Plan {
	normalized := textnorm.Normalize(question)
	opPart, filterPart := SplitFilterPart(normalized)
	cls := ClassifyIntent(opPart)

	resolver := NewResolver(t, synonyms, cutoff)
	filters := ExtractFilters(filterPart, resolver)

	var column string
	var hasColumn bool
	switch cls.Intent {
	case models.IntentSum, models.IntentMean:
		column, hasColumn = resolver.ResolveNumeric(opPart)
	default:
		column, hasColumn = resolver.Resolve(opPart)
	}

	return Plan{
		Intent:    cls.Intent,
		Explicit:  cls.Explicit,
		Column:    column,
		HasColumn: hasColumn,
		Filters:   filters,
	}
}
