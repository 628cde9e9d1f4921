package bar

import (
	"bar-manager/internal/core/matching"
	"bar-manager/internal/core/measure"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// ShoppingItemInput 手動新增購物清單項目的輸入
type ShoppingItemInput struct {
	IngredientID uint   `json:"ingredient_id" binding:"required"`
	Quantity     int    `json:"quantity,omitempty"`
	Unit         string `json:"unit,omitempty"`
}

// ShoppingService 購物清單服務
type ShoppingService struct {
	repo       *persistence.ShoppingListRepository
	recipeRepo *persistence.RecipeRepository
	ingRepo    *persistence.IngredientRepository
	matcher    *matching.Matcher
	names      *synonym.Canonicalizer
	units      *synonym.Canonicalizer
}

// NewShoppingService 建立購物清單服務
func NewShoppingService(
	repo *persistence.ShoppingListRepository,
	recipeRepo *persistence.RecipeRepository,
	ingRepo *persistence.IngredientRepository,
	matcher *matching.Matcher,
	names *synonym.Canonicalizer,
	units *synonym.Canonicalizer,
) *ShoppingService {
	return &ShoppingService{
		repo:       repo,
		recipeRepo: recipeRepo,
		ingRepo:    ingRepo,
		matcher:    matcher,
		names:      names,
		units:      units,
	}
}

// List 列出購物清單項目
func (s *ShoppingService) List(skip, limit int) ([]persistence.ShoppingListItem, error) {
	return s.repo.List(skip, limit)
}

// Add 手動新增購物清單項目
func (s *ShoppingService) Add(input ShoppingItemInput) (*persistence.ShoppingListItem, error) {
	ing, err := s.ingRepo.GetByID(input.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, common.ErrIngredientNotFound
	}

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	item := &persistence.ShoppingListItem{
		IngredientID: ing.ID,
		Quantity:     quantity,
		Unit:         input.Unit,
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	item.Ingredient = *ing
	return item, nil
}

// Delete 刪除購物清單項目，回傳是否有刪到
func (s *ShoppingService) Delete(id uint) (bool, error) {
	return s.repo.Delete(id)
}

// Clear 清空購物清單
func (s *ShoppingService) Clear() error {
	return s.repo.Clear()
}

// FromRecipe 把酒譜的缺貨原料加入購物清單：每個缺貨原料一筆、
// 數量 1、記錄來源酒譜，單位取自酒譜份量字串的解析結果
// （解析不出來就留空）。查無酒譜回傳 (nil, nil)。
func (s *ShoppingService) FromRecipe(recipeID uint) ([]persistence.ShoppingListItem, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}

	missing, err := s.matcher.MissingIngredients(recipe)
	if err != nil {
		return nil, err
	}

	units := s.unitsByCanonical(recipe)

	out := make([]persistence.ShoppingListItem, 0, len(missing))
	for _, ref := range missing {
		item := persistence.ShoppingListItem{
			IngredientID: ref.ID,
			Quantity:     1,
			RecipeID:     &recipe.ID,
			Unit:         units[ref.Name],
		}
		if err := s.repo.Create(&item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	common.LogInfo("缺貨原料已加入購物清單",
		zap.Uint("recipe_id", recipeID),
		zap.Int("項目數", len(out)),
	)
	return out, nil
}

// unitsByCanonical 解析酒譜份量字串，建立正規原料名稱到單位的對照。
// 同一正規名稱出現多次時取第一個解析成功的單位。
func (s *ShoppingService) unitsByCanonical(recipe *persistence.Recipe) map[string]string {
	units := make(map[string]string)
	for _, ri := range recipe.Ingredients {
		canonical := s.names.Canonicalize(ri.Name)
		if _, ok := units[canonical]; ok {
			continue
		}
		if parsed := measure.Parse(ri.Measure, s.units); parsed != nil {
			units[canonical] = parsed.Unit
		}
	}
	return units
}
