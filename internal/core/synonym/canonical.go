package synonym

import (
	"strings"
	"unicode"
)

// RecaseIngredient 原料正規名稱的大小寫規範：每個空白分隔的單字首字母大寫
func RecaseIngredient(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// RecaseUnit 單位正規名稱一律小寫
func RecaseUnit(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Canonicalizer 名稱正規化：優先查別名表，查不到時落回網域的大小寫規範。
// 對已是正規形式的輸入再跑一次結果不變。
type Canonicalizer struct {
	store  *Store
	recase func(string) string
}

// NewIngredientCanonicalizer 建立原料名稱正規化器
func NewIngredientCanonicalizer(store *Store) *Canonicalizer {
	return &Canonicalizer{store: store, recase: RecaseIngredient}
}

// NewUnitCanonicalizer 建立單位名稱正規化器
func NewUnitCanonicalizer(store *Store) *Canonicalizer {
	return &Canonicalizer{store: store, recase: RecaseUnit}
}

// Canonicalize 回傳輸入文字的正規名稱，未知輸入也保證有確定結果
func (c *Canonicalizer) Canonicalize(raw string) string {
	if canonical, ok := c.store.Lookup(raw); ok {
		return canonical
	}
	return c.recase(strings.TrimSpace(raw))
}
