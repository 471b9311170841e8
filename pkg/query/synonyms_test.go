package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	content := `synonyms:
  - phrase: faturamento
    column: valor_nota
  - phrase: fabricante
    column: marca_veiculo
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	synonyms, err := LoadSynonyms(path)
	require.NoError(t, err)
	require.Len(t, synonyms, 2)
	assert.Equal(t, Synonym{Phrase: "faturamento", Column: "valor_nota"}, synonyms[0])
	assert.Equal(t, Synonym{Phrase: "fabricante", Column: "marca_veiculo"}, synonyms[1])
}

func TestLoadSynonymsEmptyPath(t *testing.T) {
	synonyms, err := LoadSynonyms("")
	require.NoError(t, err)
	assert.Nil(t, synonyms)
}

func TestLoadSynonymsMissingFile(t *testing.T) {
	_, err := LoadSynonyms(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadSynonymsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synonyms: [not: {a: valid"), 0o644))

	_, err := LoadSynonyms(path)
	assert.Error(t, err)
}
