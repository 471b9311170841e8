package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nielrocha96/planilha-engine/pkg/models"
)

// RenderAnswer turns a query result into one Portuguese answer string.
// Clarification results explain what could not be identified and suggest
// a rephrasing; everything else states the computed value.
func RenderAnswer(res models.QueryResult) string {
	switch res.Clarify {
	case models.ClarifyColumn:
		return "Não consegui identificar a coluna a que a pergunta se refere. " +
			"Cite o nome da coluna como aparece na planilha, por exemplo: 'Qual é a soma de valor_nota?'."
	case models.ClarifyQuestion:
		return "Não consegui entender a pergunta. Tente algo como " +
			"'Quantos registros existem?', 'Qual é a soma de <coluna>?' ou 'Liste os valores de <coluna>'."
	}

	switch res.Intent {
	case models.IntentCount:
		return renderCount(res) + filterNote(res)
	case models.IntentSum:
		if res.NoNumericData {
			return fmt.Sprintf("Nenhum valor numérico foi encontrado na coluna '%s'; a soma é 0.", res.Column) + filterNote(res)
		}
		return fmt.Sprintf("A soma de '%s' é %s.", res.Column, formatNumber(res.Value)) + filterNote(res)
	case models.IntentMean:
		if res.NoNumericData {
			return fmt.Sprintf("Nenhum valor numérico foi encontrado na coluna '%s'; a média é 0.", res.Column) + filterNote(res)
		}
		return fmt.Sprintf("A média de '%s' é %s.", res.Column, formatNumber(res.Value)) + filterNote(res)
	case models.IntentList:
		if res.Column != "" {
			return renderValues(res) + filterNote(res)
		}
		return renderRows(res)
	}
	return "Não consegui entender a pergunta."
}

func renderCount(res models.QueryResult) string {
	if res.Column != "" {
		if res.Count == 1 {
			return fmt.Sprintf("Foi encontrado 1 valor preenchido na coluna '%s'.", res.Column)
		}
		return fmt.Sprintf("Foram encontrados %d valores preenchidos na coluna '%s'.", res.Count, res.Column)
	}
	if res.Count == 1 {
		return "Foi encontrado 1 registro."
	}
	return fmt.Sprintf("Foram encontrados %d registros.", res.Count)
}

func renderValues(res models.QueryResult) string {
	if res.DistinctTotal == 0 {
		return fmt.Sprintf("Nenhum valor encontrado na coluna '%s'.", res.Column)
	}
	b := fmt.Sprintf("Valores de '%s': %s", res.Column, strings.Join(res.Values, ", "))
	switch extra := res.DistinctTotal - len(res.Values); {
	case extra == 1:
		b += " e mais 1 valor"
	case extra > 1:
		b += fmt.Sprintf(" e mais %d valores", extra)
	}
	return b + "."
}

func renderRows(res models.QueryResult) string {
	if res.MatchedRows == 0 {
		return "Nenhum registro corresponde aos filtros."
	}
	b := fmt.Sprintf("Foram encontrados %d registros.", res.MatchedRows)
	if res.MatchedRows == 1 {
		b = "Foi encontrado 1 registro."
	}
	if len(res.Rows) == 0 {
		return b
	}
	rendered := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		parts := make([]string, len(row))
		for j, cell := range row {
			parts[j] = fmt.Sprintf("%s: %s", res.RowColumns[j], cell)
		}
		rendered[i] = strings.Join(parts, ", ")
	}
	b += " " + strings.Join(rendered, " | ")
	if res.MatchedRows > len(res.Rows) {
		b += fmt.Sprintf(" (mostrando os primeiros %d)", len(res.Rows))
	}
	return b + "."
}

// filterNote appends how many rows the filters selected. Counting without
// a column already reports that number, so no note there.
func filterNote(res models.QueryResult) string {
	if res.FilterCount == 0 {
		return ""
	}
	if res.Intent == models.IntentCount && res.Column == "" {
		return ""
	}
	if res.MatchedRows == 1 {
		return " Considerando os filtros, 1 registro corresponde."
	}
	return fmt.Sprintf(" Considerando os filtros, %d registros correspondem.", res.MatchedRows)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
