package query

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"

	"github.com/nielrocha96/planilha-engine/pkg/models"
	"github.com/nielrocha96/planilha-engine/pkg/textnorm"
)

// DefaultSimilarityCutoff is the minimum Levenshtein similarity between a
// column name and a question token for the fuzzy-match bonus.
const DefaultSimilarityCutoff = 0.5

type candidate struct {
	name   string
	norm   string
	tokens []string
	kind   models.ColumnKind
}

type synonymEntry struct {
	phrase string
	column string
}

// Resolver maps free-text column references onto the columns of one table.
// Derived companions are never candidates; the numeric variants also skip
// text columns so aggregations land on something summable.
type Resolver struct {
	candidates []candidate
	synonyms   []synonymEntry
	cutoff     float64
}

// NewResolver builds a resolver over a table's original columns. Synonyms
// are matched in registration order; cutoff <= 0 falls back to
// DefaultSimilarityCutoff.
func NewResolver(t *models.Table, synonyms []Synonym, cutoff float64) *Resolver {
	if cutoff <= 0 {
		cutoff = DefaultSimilarityCutoff
	}
	r := &Resolver{cutoff: cutoff}
	for _, c := range t.Columns {
		if c.Derived {
			continue
		}
		n := textnorm.Normalize(c.Name)
		r.candidates = append(r.candidates, candidate{
			name:   c.Name,
			norm:   n,
			tokens: splitNameTokens(n),
			kind:   c.Kind,
		})
	}
	for _, s := range synonyms {
		phrase := textnorm.Normalize(s.Phrase)
		if phrase == "" || s.Column == "" {
			continue
		}
		r.synonyms = append(r.synonyms, synonymEntry{phrase: phrase, column: s.Column})
	}
	return r
}

// Resolve finds the column a piece of question text refers to. The bool is
// false when no candidate scores above zero; callers treat that as "no
// target column identified", not as an error.
func (r *Resolver) Resolve(text string) (string, bool) {
	return r.resolve(text, false)
}

// ResolveNumeric is Resolve restricted to numeric columns.
func (r *Resolver) ResolveNumeric(text string) (string, bool) {
	return r.resolve(text, true)
}

func (r *Resolver) resolve(text string, numericOnly bool) (string, bool) {
	q := textnorm.Normalize(text)
	if q == "" {
		return "", false
	}
	qTokens := strings.Fields(q)
	tokenSet := make(map[string]struct{}, 2*len(qTokens))
	for _, tok := range qTokens {
		tokenSet[tok] = struct{}{}
		tokenSet[inflection.Singular(tok)] = struct{}{}
	}

	// An exact column name always resolves to itself.
	for _, c := range r.candidates {
		if numericOnly && c.kind != models.ColumnNumeric {
			continue
		}
		if c.norm == q {
			return c.name, true
		}
	}

	for _, s := range r.synonyms {
		if !strings.Contains(q, s.phrase) {
			continue
		}
		for _, c := range r.candidates {
			if c.name != s.column {
				continue
			}
			if numericOnly && c.kind != models.ColumnNumeric {
				break
			}
			return c.name, true
		}
	}

	best := ""
	bestScore := 0
	for _, c := range r.candidates {
		if numericOnly && c.kind != models.ColumnNumeric {
			continue
		}
		score := 0
		if strings.Contains(q, c.norm) {
			score += 3
		}
		for _, tok := range c.tokens {
			sing := inflection.Singular(tok)
			if _, ok := tokenSet[tok]; ok {
				score += 2
			} else if _, ok := tokenSet[sing]; ok {
				score += 2
			} else if len(tok) > 2 && strings.Contains(q, tok) {
				score++
			}
		}
		if bestSimilarity(c.norm, qTokens) >= r.cutoff {
			score++
		}
		if score > bestScore || (score == bestScore && score > 0 && len(c.name) > len(best)) {
			best = c.name
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// splitNameTokens breaks a normalized column name on underscores and any
// other non-alphanumeric separators.
func splitNameTokens(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func bestSimilarity(name string, tokens []string) float64 {
	best := 0.0
	for _, tok := range tokens {
		if s := similarity(name, tok); s > best {
			best = s
		}
	}
	return best
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes edit distance with the two-row dynamic programming
// form. Inputs are normalized ASCII, so byte comparison is safe.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
