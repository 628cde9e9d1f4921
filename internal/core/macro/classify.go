package macro

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 常見的忽略字
var stopWords = map[string]struct{}{
	"of":    {},
	"the":   {},
	"and":   {},
	"juice": {},
	"saft":  {},
}

var tokenSplitter = regexp.MustCompile(`[\s,/()+\-]+`)

// 分解為 NFD 後移除組合附加符號（變音符號）
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize 轉小寫並去除變音符號
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	stripped, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		return text
	}
	return stripped
}

// Tokenize 將文字切為 token：正規化後以空白、逗號、斜線、括號、
// 加號與連字號切分，去除停用字與空 token
func Tokenize(text string) []string {
	tokens := tokenSplitter.Split(Normalize(text), -1)
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Classifier 以關鍵字表對原料與酒譜做風味分類
type Classifier struct {
	lexicon Lexicon
}

// NewClassifier 建立分類器
func NewClassifier(lexicon Lexicon) *Classifier {
	return &Classifier{lexicon: lexicon}
}

// Names 回傳所有 macro 名稱
func (c *Classifier) Names() []string {
	return c.lexicon.Names()
}

// MacrosForTokens 回傳命中的 macro：任一關鍵字是任一 token 的子字串即命中
func (c *Classifier) MacrosForTokens(tokens []string) []string {
	hits := make(map[string]struct{})
	for _, token := range tokens {
		for name, words := range c.lexicon {
			for _, word := range words {
				if strings.Contains(token, word) {
					hits[name] = struct{}{}
					break
				}
			}
		}
	}

	out := make([]string, 0, len(hits))
	for name := range hits {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// MacrosForIngredient 回傳單一原料名稱命中的 macro
func (c *Classifier) MacrosForIngredient(name string) []string {
	return c.MacrosForTokens(Tokenize(name))
}

// ClassifyRecipe 回傳酒譜的 macro 命中計數。
// 一個原料可以命中多個 macro，但對每個 macro 最多貢獻 1。
func (c *Classifier) ClassifyRecipe(ingredientNames []string) map[string]int {
	scores := make(map[string]int)
	for _, name := range ingredientNames {
		for _, m := range c.MacrosForIngredient(name) {
			scores[m]++
		}
	}
	return scores
}

// MacrosForRecipe 回傳酒譜命中的 macro 名稱
func (c *Classifier) MacrosForRecipe(ingredientNames []string) []string {
	hits := c.ClassifyRecipe(ingredientNames)
	out := make([]string, 0, len(hits))
	for name := range hits {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
