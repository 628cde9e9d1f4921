package macro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLexicon = Lexicon{
	"sour":   {"lime", "lemon", "citrus"},
	"sweet":  {"syrup", "sugar", "honey"},
	"bitter": {"bitter", "campari"},
}

func TestNormalizeStripsDiacritics(t *testing.T) {
	assert.Equal(t, "anejo", Normalize("Añejo"))
	assert.Equal(t, "creme de cacao", Normalize("Crème de Cacao"))
	assert.Equal(t, "lime", Normalize("  LIME "))
}

func TestTokenize(t *testing.T) {
	// 停用字與分隔符號都被剔除
	assert.Equal(t, []string{"fresh", "lime"}, Tokenize("Fresh Lime Juice"))
	assert.Equal(t, []string{"lemon", "lime", "soda"}, Tokenize("lemon/lime (soda)"))
	assert.Equal(t, []string{"sugar", "syrup"}, Tokenize("sugar+syrup"))
	assert.Empty(t, Tokenize("of the and"))
}

func TestMacrosForIngredient(t *testing.T) {
	c := NewClassifier(testLexicon)

	assert.Equal(t, []string{"sour"}, c.MacrosForIngredient("fresh lime juice"))
	assert.Equal(t, []string{"sweet"}, c.MacrosForIngredient("Simple Syrup"))
	assert.Equal(t, []string{"bitter"}, c.MacrosForIngredient("Campari"))
	// 關鍵字是 token 的子字串即命中
	assert.Equal(t, []string{"bitter"}, c.MacrosForIngredient("Angostura Bitters"))
	assert.Empty(t, c.MacrosForIngredient("vodka"))
}

func TestClassifyRecipe(t *testing.T) {
	c := NewClassifier(testLexicon)

	scores := c.ClassifyRecipe([]string{
		"fresh lime juice",
		"lemon peel",
		"simple syrup",
		"vodka",
	})
	// 每個原料對每個 macro 最多貢獻 1
	assert.Equal(t, 2, scores["sour"])
	assert.Equal(t, 1, scores["sweet"])
	_, ok := scores["bitter"]
	assert.False(t, ok)

	assert.Equal(t, []string{"sour", "sweet"}, c.MacrosForRecipe([]string{
		"fresh lime juice", "simple syrup", "vodka",
	}))
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sour:\n  - Lime\n  - LEMON\nsweet:\n  - syrup\n"), 0644))

	lexicon, err := LoadLexicon(path)
	require.NoError(t, err)
	// 關鍵字載入時轉小寫
	assert.Equal(t, []string{"lime", "lemon"}, lexicon["sour"])
	assert.Equal(t, []string{"sour", "sweet"}, lexicon.Names())
}

func TestLoadLexiconMissingFile(t *testing.T) {
	lexicon, err := LoadLexicon(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, lexicon)
}
