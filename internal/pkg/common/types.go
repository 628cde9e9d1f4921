package common

// SynonymEntry 別名對應項目
type SynonymEntry struct {
	Alias     string `json:"alias" binding:"required"`     // 別名（儲存為小寫）
	Canonical string `json:"canonical" binding:"required"` // 正規名稱
}

// RecipeIngredientInput 酒譜原料輸入（原始文字，不做正規化）
type RecipeIngredientInput struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// RecipeDetail 酒譜完整內容（匯入時使用）
type RecipeDetail struct {
	Name         string                  `json:"name"`
	Alcoholic    string                  `json:"alcoholic"`
	Glass        string                  `json:"glass"`
	Instructions string                  `json:"instructions"`
	Thumb        string                  `json:"thumb"`
	Tags         []string                `json:"tags"`
	Categories   []string                `json:"categories"`
	Ibas         []string                `json:"ibas"`
	Ingredients  []RecipeIngredientInput `json:"ingredients"`
}
