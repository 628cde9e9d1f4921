package persistence

import (
	"errors"

	"bar-manager/internal/core/matching"

	"gorm.io/gorm"
)

// IngredientRepository 原料資料存取
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 建立原料資料存取
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List 列出原料，limit ≤ 0 表示不設上限
func (r *IngredientRepository) List(skip, limit int) ([]Ingredient, error) {
	var out []Ingredient
	if limit <= 0 {
		limit = -1
	}
	if err := r.db.Offset(skip).Limit(limit).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID 依 id 取得原料，查無資料回傳 (nil, nil)
func (r *IngredientRepository) GetByID(id uint) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.First(&ing, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// FindByCanonicalName 依正規名稱查詢（大小寫不敏感），查無資料回傳 (nil, nil)
func (r *IngredientRepository) FindByCanonicalName(name string) (*Ingredient, error) {
	var ing Ingredient
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

// Create 建立原料
func (r *IngredientRepository) Create(ing *Ingredient) error {
	return r.db.Create(ing).Error
}

// GetOrCreate 依正規名稱取得原料，不存在時建立
func (r *IngredientRepository) GetOrCreate(name string) (*Ingredient, error) {
	existing, err := r.FindByCanonicalName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ing := &Ingredient{Name: name}
	if err := r.db.Create(ing).Error; err != nil {
		return nil, err
	}
	return ing, nil
}

// InventoryRepository 庫存資料存取
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 建立庫存資料存取
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// List 列出庫存項目（含原料），limit ≤ 0 表示不設上限
func (r *InventoryRepository) List(skip, limit int) ([]InventoryItem, error) {
	var out []InventoryItem
	if limit <= 0 {
		limit = -1
	}
	if err := r.db.Preload("Ingredient").Offset(skip).Limit(limit).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// All 取得全部庫存項目（含原料）
func (r *InventoryRepository) All() ([]InventoryItem, error) {
	var out []InventoryItem
	if err := r.db.Preload("Ingredient").Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID 依 id 取得庫存項目，查無資料回傳 (nil, nil)
func (r *InventoryRepository) GetByID(id uint) (*InventoryItem, error) {
	var item InventoryItem
	err := r.db.Preload("Ingredient").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIngredient 依原料 id 取得庫存項目，查無資料回傳 (nil, nil)
func (r *InventoryRepository) FindByIngredient(ingredientID uint) (*InventoryItem, error) {
	var item InventoryItem
	err := r.db.Where("ingredient_id = ?", ingredientID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 建立庫存項目
func (r *InventoryRepository) Create(item *InventoryItem) error {
	return r.db.Create(item).Error
}

// Save 更新庫存項目
func (r *InventoryRepository) Save(item *InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete 刪除庫存項目，回傳是否有刪到
func (r *InventoryRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&InventoryItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ShoppingListRepository 購物清單資料存取
type ShoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository 建立購物清單資料存取
func NewShoppingListRepository(db *gorm.DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

// List 列出購物清單項目（含原料與來源酒譜），limit ≤ 0 表示不設上限
func (r *ShoppingListRepository) List(skip, limit int) ([]ShoppingListItem, error) {
	var out []ShoppingListItem
	if limit <= 0 {
		limit = -1
	}
	err := r.db.Preload("Ingredient").Preload("Recipe").Preload("Recipe.Ingredients").
		Offset(skip).Limit(limit).Order("id").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create 建立購物清單項目
func (r *ShoppingListRepository) Create(item *ShoppingListItem) error {
	return r.db.Create(item).Error
}

// Delete 刪除購物清單項目，回傳是否有刪到
func (r *ShoppingListRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&ShoppingListItem{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Clear 清空購物清單
func (r *ShoppingListRepository) Clear() error {
	return r.db.Where("1 = 1").Delete(&ShoppingListItem{}).Error
}

// Catalog 比對引擎的原料目錄適配器
type Catalog struct {
	repo *IngredientRepository
}

// NewCatalog 建立目錄適配器
func NewCatalog(repo *IngredientRepository) Catalog {
	return Catalog{repo: repo}
}

// FindByCanonicalName 實現 matching.IngredientCatalog
func (c Catalog) FindByCanonicalName(name string) (*matching.IngredientRef, error) {
	ing, err := c.repo.FindByCanonicalName(name)
	if err != nil || ing == nil {
		return nil, err
	}
	return &matching.IngredientRef{ID: ing.ID, Name: ing.Name}, nil
}

// Create 實現 matching.IngredientCatalog
func (c Catalog) Create(name string) (*matching.IngredientRef, error) {
	ing, err := c.repo.GetOrCreate(name)
	if err != nil {
		return nil, err
	}
	return &matching.IngredientRef{ID: ing.ID, Name: ing.Name}, nil
}

// InventoryIndex 比對引擎的庫存查詢適配器
type InventoryIndex struct {
	repo *InventoryRepository
}

// NewInventoryIndex 建立庫存適配器
func NewInventoryIndex(repo *InventoryRepository) InventoryIndex {
	return InventoryIndex{repo: repo}
}

// FindByIngredient 實現 matching.InventoryLookup
func (x InventoryIndex) FindByIngredient(ingredientID uint) (*matching.InventoryRef, error) {
	item, err := x.repo.FindByIngredient(ingredientID)
	if err != nil || item == nil {
		return nil, err
	}
	return &matching.InventoryRef{
		IngredientID: item.IngredientID,
		Quantity:     item.Quantity,
		Status:       item.Status,
	}, nil
}
