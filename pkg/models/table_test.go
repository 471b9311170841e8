package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableAlignsRows(t *testing.T) {
	table := NewTable(
		[]Column{{Name: "a", Kind: ColumnText}, {Name: "b", Kind: ColumnText}},
		[][]string{
			{"1"},
			{"1", "2", "extra"},
			{"x", "y"},
		},
	)

	require.Equal(t, 3, table.RowCount())
	assert.Equal(t, []string{"1", ""}, table.Rows[0])
	assert.Equal(t, []string{"1", "2"}, table.Rows[1])
	assert.Equal(t, []string{"x", "y"}, table.Rows[2])
}

func TestAppendColumn(t *testing.T) {
	table := NewTable(
		[]Column{{Name: "marca", Kind: ColumnText}},
		[][]string{{"FIAT"}, {"JEEP"}},
	)

	err := table.AppendColumn(Column{Name: "marca_norm", Kind: ColumnText, Derived: true, Source: "marca"}, []string{"fiat", "jeep"})
	require.NoError(t, err)

	idx, ok := table.ColumnIndex("marca_norm")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "fiat", table.Cell(0, idx))
	assert.Equal(t, "jeep", table.Cell(1, idx))

	names := make([]string, 0)
	for _, c := range table.OriginalColumns() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"marca"}, names)
}

func TestAppendColumnRejectsMismatchedLength(t *testing.T) {
	table := NewTable([]Column{{Name: "a", Kind: ColumnText}}, [][]string{{"1"}, {"2"}})

	err := table.AppendColumn(Column{Name: "a_norm", Derived: true, Source: "a"}, []string{"only one"})
	assert.Error(t, err)
}

func TestAppendColumnRejectsDuplicateName(t *testing.T) {
	table := NewTable([]Column{{Name: "a", Kind: ColumnText}}, [][]string{{"1"}})

	err := table.AppendColumn(Column{Name: "a"}, []string{"x"})
	assert.Error(t, err)
}

func TestParseCellNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{name: "integer", input: "100", expected: 100, ok: true},
		{name: "plain decimal", input: "1234.56", expected: 1234.56, ok: true},
		{name: "decimal comma", input: "1,5", expected: 1.5, ok: true},
		{name: "thousands and decimal", input: "1.234,56", expected: 1234.56, ok: true},
		{name: "surrounding spaces", input: " 42 ", expected: 42, ok: true},
		{name: "negative", input: "-3,25", expected: -3.25, ok: true},
		{name: "scientific", input: "1e3", expected: 1000, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "text", input: "FIAT", ok: false},
		{name: "currency prefix", input: "R$ 100", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ParseCellNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, v, 1e-9)
			}
		})
	}
}
