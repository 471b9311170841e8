package query

import (
	"strings"

	"github.com/nielrocha96/planilha-engine/pkg/models"
)

// Classification is the outcome of intent detection. Explicit records
// whether a keyword family actually matched; a defaulted list intent with
// nothing else identified turns into a clarification downstream.
type Classification struct {
	Intent   models.Intent
	Explicit bool
}

// intentKeywords is scanned in order, so sum beats mean beats count beats
// list when a question mixes families ("total" plus "quantos" sums).
var intentKeywords = []struct {
	intent   models.Intent
	keywords []string
}{
	{models.IntentSum, []string{"soma", "somar", "somatorio", "total", "totalizar"}},
	{models.IntentMean, []string{"media", "valor medio"}},
	{models.IntentCount, []string{"quantos", "quantas", "quantidade", "contagem", "numero de"}},
	{models.IntentList, []string{
		"listar", "liste", "mostrar", "mostre", "mostra", "exibir", "exiba",
		"quais", "me de", "retornar", "retorne", "trazer", "traga",
	}},
}

// ClassifyIntent detects the requested operation in the normalized
// operation part of a question. No keyword match defaults to list.
func ClassifyIntent(normalized string) Classification {
	for _, family := range intentKeywords {
		for _, kw := range family.keywords {
			if strings.Contains(normalized, kw) {
				return Classification{Intent: family.intent, Explicit: true}
			}
		}
	}
	return Classification{Intent: models.IntentList, Explicit: false}
}
