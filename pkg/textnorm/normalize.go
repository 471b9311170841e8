// Package textnorm normalizes Portuguese text so that questions, column
// names, and cell values can be compared accent- and case-insensitively.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize decomposes accented characters, drops combining marks and any
// remaining non-ASCII runes, lowercases, and trims surrounding whitespace.
// "Média de Preço" becomes "media de preco".
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.TrimSpace(b.String())
}

// NormalizeCell applies Normalize and then removes every rune outside
// [a-z0-9\s-], collapsing cell values to a comparable canonical form.
// Hyphens survive so compound values like "cross-over" stay intact.
func NormalizeCell(s string) string {
	n := Normalize(s)
	var b strings.Builder
	b.Grow(len(n))
	for _, r := range n {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
