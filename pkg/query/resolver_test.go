package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nielrocha96/planilha-engine/pkg/models"
)

func TestResolverResolve(t *testing.T) {
	table := newVehicleTable(t)

	tests := []struct {
		name     string
		text     string
		expected string
		ok       bool
	}{
		{name: "exact name", text: "valor_nota", expected: "valor_nota", ok: true},
		{name: "exact name mixed case", text: "Valor_Nota", expected: "valor_nota", ok: true},
		{name: "name inside phrase", text: "soma de valor_nota", expected: "valor_nota", ok: true},
		{name: "tokens without underscore", text: "qual a marca do veiculo", expected: "marca_veiculo", ok: true},
		{name: "plural tokens", text: "quais sao as marcas dos veiculos", expected: "marca_veiculo", ok: true},
		{name: "accented reference", text: "média de valor da nota", expected: "valor_nota", ok: true},
		{name: "norm companion resolves to source", text: "marca_veiculo_norm", expected: "marca_veiculo", ok: true},
		{name: "nothing matches", text: "qual o sentido da vida", ok: false},
		{name: "empty text", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(table, nil, 0)
			col, ok := resolver.Resolve(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, col)
		})
	}
}

func TestResolverNumericOnly(t *testing.T) {
	table := newVehicleTable(t)
	resolver := NewResolver(table, nil, 0)

	col, ok := resolver.ResolveNumeric("soma de valor_nota")
	require.True(t, ok)
	assert.Equal(t, "valor_nota", col)

	// A pure text reference has no numeric candidate to land on.
	_, ok = resolver.ResolveNumeric("soma de marca do veiculo")
	assert.False(t, ok)
}

func TestResolverSynonyms(t *testing.T) {
	table := newVehicleTable(t)
	synonyms := []Synonym{
		{Phrase: "faturamento", Column: "valor_nota"},
		{Phrase: "Fabricante", Column: "marca_veiculo"},
	}
	resolver := NewResolver(table, synonyms, 0)

	col, ok := resolver.Resolve("qual o faturamento")
	require.True(t, ok)
	assert.Equal(t, "valor_nota", col)

	col, ok = resolver.Resolve("liste os fabricante da planilha")
	require.True(t, ok)
	assert.Equal(t, "marca_veiculo", col)

	// Synonyms never bypass the numeric restriction.
	_, ok = NewResolver(table, []Synonym{{Phrase: "fabricante", Column: "marca_veiculo"}}, 0).
		ResolveNumeric("soma do fabricante")
	assert.False(t, ok)
}

func TestResolverSkipsDerivedColumns(t *testing.T) {
	table := newVehicleTable(t)
	resolver := NewResolver(table, nil, 0)

	col, ok := resolver.Resolve("marca_veiculo")
	require.True(t, ok)
	assert.Equal(t, "marca_veiculo", col)

	_, hasNorm := table.ColumnIndex("marca_veiculo" + models.NormSuffix)
	require.True(t, hasNorm, "fixture should carry the derived companion")
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"valor", "valor", 0},
		{"marca", "marcas", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, levenshtein(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("valor", "valor"))
	assert.InDelta(t, 1.0-1.0/6.0, similarity("marca", "marcas"), 1e-9)
	assert.Less(t, similarity("valor_nota", "xyz"), 0.5)
}
