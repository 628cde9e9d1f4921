package matching

// IngredientRef 目錄中的原料（正規名稱唯一）
type IngredientRef struct {
	ID   uint
	Name string
}

// InventoryRef 原料的庫存狀態
type InventoryRef struct {
	IngredientID uint
	Quantity     int
	Status       string
}

// RecipeIngredient 酒譜原料項目：原始名稱與原始份量字串。
// 寫入時不做正規化，正規化發生在比對當下，別名表的修改會
// 回溯影響所有既有酒譜的可用性計算。
type RecipeIngredient struct {
	Name    string
	Measure string
}

// RecipeView 比對引擎需要的酒譜視圖
type RecipeView interface {
	RecipeID() uint
	RecipeName() string
	RecipeIngredients() []RecipeIngredient
}

// IngredientCatalog 原料目錄查詢與建立（外部協作者契約）
type IngredientCatalog interface {
	// FindByCanonicalName 依正規名稱查詢，查無資料時回傳 (nil, nil)
	FindByCanonicalName(name string) (*IngredientRef, error)
	// Create 以正規名稱建立原料
	Create(name string) (*IngredientRef, error)
}

// InventoryLookup 庫存查詢（外部協作者契約）
type InventoryLookup interface {
	// FindByIngredient 依原料 id 查詢庫存，查無資料時回傳 (nil, nil)
	FindByIngredient(ingredientID uint) (*InventoryRef, error)
}

// NameCanonicalizer 名稱正規化契約
type NameCanonicalizer interface {
	Canonicalize(raw string) string
}

// MacroClassifier 風味分類契約，推薦過濾時使用
type MacroClassifier interface {
	MacrosForRecipe(ingredientNames []string) []string
}

// Ranked 附帶可用性統計的酒譜
type Ranked struct {
	Recipe         RecipeView
	AvailableCount int
	MissingCount   int
}
