package query

import (
	"regexp"
	"strings"

	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/textnorm"
)

// filterMarkers separate the operation part of a question from its filter
// clause. Checked in order, so multi-word markers win over the short
// prepositions that prefix them.
var filterMarkers = []string{
	"no qual", "na qual", "nos quais", "nas quais",
	"onde", "em que",
	" por ", " para ", " no ", " na ", " nos ", " nas ", " em ",
}

// opPattern matches one filter fragment: column phrase, operator, value.
// Symbol forms come before their prefixes and word forms carry boundaries
// so "igual" never matches inside another word.
var opPattern = regexp.MustCompile(`^(.+?)\s*(==|!=|=|>|<|\bdiferente de\b|\bigual a\b|\bigual\b|\bmaior do que\b|\bmaior que\b|\bmenor do que\b|\bmenor que\b)\s*(.+)$`)

// SplitFilterPart splits a normalized question at its first filter marker.
// The first return is the operation part (intent and target column live
// there), the second the filter clause, empty when no marker occurs.
func SplitFilterPart(q string) (string, string) {
	for _, marker := range filterMarkers {
		idx := strings.Index(q, marker)
		if idx < 0 {
			continue
		}
		return strings.TrimSpace(q[:idx]), strings.TrimSpace(q[idx+len(marker):])
	}
	return strings.TrimSpace(q), ""
}

// ExtractFilters parses a filter clause into predicates. Fragments with no
// recognizable operator, an unresolvable column phrase, or an empty value
// are dropped: extraction only ever shrinks the filter set, it never fails
// a request.
func ExtractFilters(filterPart string, r *Resolver) []models.FilterPredicate {
	if strings.TrimSpace(filterPart) == "" {
		return nil
	}
	var preds []models.FilterPredicate
	for _, frag := range splitFragments(filterPart) {
		m := opPattern.FindStringSubmatch(frag)
		if m == nil {
			continue
		}
		op, known := compareOpFor(m[2])
		if !known {
			continue
		}
		column, ok := r.Resolve(m[1])
		if !ok {
			continue
		}
		value := strings.TrimRight(strings.TrimSpace(m[3]), ".,;!?: ")
		if value == "" {
			continue
		}
		if num, isNum := models.ParseCellNumber(value); isNum {
			preds = append(preds, models.FilterPredicate{Column: column, Op: op, Number: num, IsNumber: true})
			continue
		}
		if op == models.OpGreaterThan || op == models.OpLessThan {
			// ordering comparisons need a numeric value
			continue
		}
		norm := textnorm.NormalizeCell(value)
		if norm == "" {
			continue
		}
		preds = append(preds, models.FilterPredicate{Column: column, Op: op, Value: norm})
	}
	return preds
}

func compareOpFor(op string) (models.CompareOp, bool) {
	switch op {
	case "=", "==", "igual", "igual a":
		return models.OpEquals, true
	case "!=", "diferente de":
		return models.OpNotEquals, true
	case ">", "maior que", "maior do que":
		return models.OpGreaterThan, true
	case "<", "menor que", "menor do que":
		return models.OpLessThan, true
	}
	return "", false
}

// splitFragments breaks a filter clause into fragments on " e ", ";" and
// ",". A comma between two digits is a Brazilian decimal separator and
// stays inside its fragment.
func splitFragments(s string) []string {
	var frags []string
	var cur strings.Builder
	flush := func() {
		if f := strings.TrimSpace(cur.String()); f != "" {
			frags = append(frags, f)
		}
		cur.Reset()
	}
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == ';':
			flush()
		case s[i] == ',':
			if i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
				cur.WriteByte(s[i])
			} else {
				flush()
			}
		case s[i] == ' ' && strings.HasPrefix(s[i:], " e "):
			flush()
			i += 2
		default:
			cur.WriteByte(s[i])
		}
	}
	flush()
	return frags
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
