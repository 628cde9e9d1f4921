package persistence

import (
	"bar-manager/internal/core/matching"
)

// Ingredient 原料。正規名稱大小寫不敏感唯一。
type Ingredient struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	Type    string `json:"type,omitempty"`
	Barcode string `json:"barcode,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Tag 酒譜標籤
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Category 酒譜分類
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Iba IBA 官方酒單
type Iba struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Recipe 酒譜。原料保留原始文字，比對時才正規化。
type Recipe struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	Name         string             `gorm:"not null;index" json:"name"`
	Alcoholic    string             `json:"alcoholic,omitempty"`
	Glass        string             `json:"glass,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Thumb        string             `json:"thumb,omitempty"`
	Tags         []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Categories   []Category         `gorm:"many2many:recipe_categories" json:"categories"`
	Ibas         []Iba              `gorm:"many2many:recipe_ibas" json:"ibas"`
	Ingredients  []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

// RecipeIngredient 酒譜原料項目（原始名稱與份量字串）
type RecipeIngredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"index;not null" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Measure  string `json:"measure,omitempty"`
}

// InventoryItem 庫存項目。建立後不會被隱式刪除，刪除一律明確操作。
type InventoryItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	IngredientID uint       `gorm:"uniqueIndex;not null" json:"ingredient_id"`
	Quantity     int        `gorm:"default:0" json:"quantity"`
	Status       string     `gorm:"default:available" json:"status"`
	Ingredient   Ingredient `json:"ingredient"`
}

// ShoppingListItem 購物清單項目
type ShoppingListItem struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	IngredientID uint       `gorm:"not null" json:"ingredient_id"`
	Quantity     int        `gorm:"default:1" json:"quantity"`
	RecipeID     *uint      `json:"recipe_id,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	Ingredient   Ingredient `json:"ingredient"`
	Recipe       *Recipe    `json:"recipe,omitempty"`
}

// RecipeID 實現 matching.RecipeView
func (r *Recipe) RecipeID() uint {
	return r.ID
}

// RecipeName 實現 matching.RecipeView
func (r *Recipe) RecipeName() string {
	return r.Name
}

// RecipeIngredients 實現 matching.RecipeView
func (r *Recipe) RecipeIngredients() []matching.RecipeIngredient {
	out := make([]matching.RecipeIngredient, len(r.Ingredients))
	for i, ri := range r.Ingredients {
		out[i] = matching.RecipeIngredient{Name: ri.Name, Measure: ri.Measure}
	}
	return out
}
