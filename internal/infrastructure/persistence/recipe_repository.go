package persistence

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// RecipeFilter 酒譜查詢條件。分頁在文字／屬性過濾之後、
// 可用性計算之前套用。
type RecipeFilter struct {
	Query     string // 名稱子字串，大小寫不敏感
	Tag       string
	Category  string
	Alcoholic string
	Iba       string
	Skip      int
	Limit     int
}

// RecipeRepository 酒譜資料存取
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 建立酒譜資料存取
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// preload 載入酒譜的所有關聯
func (r *RecipeRepository) preload() *gorm.DB {
	return r.db.Preload("Ingredients").Preload("Tags").Preload("Categories").Preload("Ibas")
}

// Create 建立酒譜（含原料與關聯）
func (r *RecipeRepository) Create(recipe *Recipe) error {
	return r.db.Create(recipe).Error
}

// GetByID 依 id 取得酒譜，查無資料回傳 (nil, nil)
func (r *RecipeRepository) GetByID(id uint) (*Recipe, error) {
	var recipe Recipe
	err := r.preload().First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List 列出酒譜，limit ≤ 0 表示不設上限
func (r *RecipeRepository) List(skip, limit int) ([]Recipe, error) {
	var out []Recipe
	if limit <= 0 {
		limit = -1
	}
	if err := r.preload().Offset(skip).Limit(limit).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Search 依條件查詢酒譜。文字過濾與分頁都在這層完成，
// 可用性統計由比對引擎在結果上計算。
func (r *RecipeRepository) Search(filter RecipeFilter) ([]Recipe, error) {
	q := r.preload().Model(&Recipe{})

	if strings.TrimSpace(filter.Query) != "" {
		q = q.Where("LOWER(recipes.name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(filter.Query))+"%")
	}
	if filter.Tag != "" {
		q = q.Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = rt.tag_id").
			Where("tags.name = ?", filter.Tag)
	}
	if filter.Category != "" {
		q = q.Joins("JOIN recipe_categories rc ON rc.recipe_id = recipes.id").
			Joins("JOIN categories ON categories.id = rc.category_id").
			Where("categories.name = ?", filter.Category)
	}
	if filter.Iba != "" {
		q = q.Joins("JOIN recipe_ibas rib ON rib.recipe_id = recipes.id").
			Joins("JOIN ibas ON ibas.id = rib.iba_id").
			Where("ibas.name = ?", filter.Iba)
	}
	if filter.Alcoholic != "" {
		q = q.Where("recipes.alcoholic = ?", filter.Alcoholic)
	}

	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var out []Recipe
	if err := q.Order("recipes.id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrCreateTag 依名稱取得標籤，不存在時建立
func (r *RecipeRepository) GetOrCreateTag(name string) (*Tag, error) {
	var tag Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = Tag{Name: name}
		if err := r.db.Create(&tag).Error; err != nil {
			return nil, err
		}
		return &tag, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetOrCreateCategory 依名稱取得分類，不存在時建立
func (r *RecipeRepository) GetOrCreateCategory(name string) (*Category, error) {
	var cat Category
	err := r.db.Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = Category{Name: name}
		if err := r.db.Create(&cat).Error; err != nil {
			return nil, err
		}
		return &cat, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetOrCreateIba 依名稱取得 IBA 清單項目，不存在時建立
func (r *RecipeRepository) GetOrCreateIba(name string) (*Iba, error) {
	var iba Iba
	err := r.db.Where("name = ?", name).First(&iba).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		iba = Iba{Name: name}
		if err := r.db.Create(&iba).Error; err != nil {
			return nil, err
		}
		return &iba, nil
	}
	if err != nil {
		return nil, err
	}
	return &iba, nil
}

// ListTags 列出所有標籤，limit ≤ 0 表示不設上限
func (r *RecipeRepository) ListTags(skip, limit int) ([]Tag, error) {
	var out []Tag
	if limit <= 0 {
		limit = -1
	}
	if err := r.db.Offset(skip).Limit(limit).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories 列出所有分類，limit ≤ 0 表示不設上限
func (r *RecipeRepository) ListCategories(skip, limit int) ([]Category, error) {
	var out []Category
	if limit <= 0 {
		limit = -1
	}
	if err := r.db.Offset(skip).Limit(limit).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
