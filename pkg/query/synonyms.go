package query

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Synonym maps a spoken phrase onto a concrete column name, letting
// questions say "faturamento" for a column called valor_nota. Order
// matters: earlier entries win when several phrases occur in a question.
type Synonym struct {
	Phrase string `yaml:"phrase"`
	Column string `yaml:"column"`
}

type synonymFile struct {
	Synonyms []Synonym `yaml:"synonyms"`
}

// LoadSynonyms reads the YAML synonym table at path. An empty path means
// no synonyms and is not an error.
func LoadSynonyms(path string) ([]Synonym, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synonyms file: %w", err)
	}
	var f synonymFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing synonyms file %s: %w", path, err)
	}
	return f.Synonyms, nil
}
