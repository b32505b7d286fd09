package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `{
	"menuItems": [
		{
			"name": "Arroz com frango e cenoura",
			"ingredients": ["Arroz Integral", "Peito de Frango", "Cenoura"],
			"nutritionalValue": "Carboidratos complexos, proteína magra, vitamina A"
		}
	],
	"reasoning": "Prioriza os itens com maior estoque disponível."
}`

func TestParseSuggestion_PlainJSON(t *testing.T) {
	suggestion, err := parseSuggestion(sampleReply)
	require.NoError(t, err)

	require.Len(t, suggestion.MenuItems, 1)
	assert.Equal(t, "Arroz com frango e cenoura", suggestion.MenuItems[0].Name)
	assert.Len(t, suggestion.MenuItems[0].Ingredients, 3)
	assert.NotEmpty(t, suggestion.Reasoning)
}

func TestParseSuggestion_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + sampleReply + "\n```"
	suggestion, err := parseSuggestion(fenced)
	require.NoError(t, err)
	require.Len(t, suggestion.MenuItems, 1)

	bare := "```\n" + sampleReply + "\n```"
	suggestion, err = parseSuggestion(bare)
	require.NoError(t, err)
	require.Len(t, suggestion.MenuItems, 1)
}

func TestParseSuggestion_RejectsGarbage(t *testing.T) {
	_, err := parseSuggestion("the model rambled instead of answering")
	assert.Error(t, err)
}

func TestParseSuggestion_RejectsEmptyMenu(t *testing.T) {
	_, err := parseSuggestion(`{"menuItems": [], "reasoning": "nothing in stock"}`)
	assert.Error(t, err)

	_, err = parseSuggestion("")
	assert.Error(t, err)

	_, err = parseSuggestion("```json\n```")
	assert.Error(t, err)
}
