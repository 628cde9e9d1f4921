package bar

import (
	"context"

	"bar-manager/internal/core/cocktaildb"
	"bar-manager/internal/core/matching"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// ImportInput 匯入酒譜的輸入。只給 Name 時會先向外部酒譜資料庫
// 查詢完整內容，查無資料或同時附上 Detail 時用提交的內容。
type ImportInput struct {
	Name   string               `json:"name" binding:"required"`
	Detail *common.RecipeDetail `json:"detail,omitempty"`
}

// RecipeService 酒譜服務：匯入、查詢、搜尋排序與推薦
type RecipeService struct {
	repo      *persistence.RecipeRepository
	invRepo   *persistence.InventoryRepository
	ingRepo   *persistence.IngredientRepository
	names     *synonym.Canonicalizer
	ranker    *matching.Ranker
	cocktails *cocktaildb.Client
}

// NewRecipeService 建立酒譜服務，cocktails 可為 nil（停用遠端匯入）
func NewRecipeService(
	repo *persistence.RecipeRepository,
	invRepo *persistence.InventoryRepository,
	ingRepo *persistence.IngredientRepository,
	names *synonym.Canonicalizer,
	ranker *matching.Ranker,
	cocktails *cocktaildb.Client,
) *RecipeService {
	return &RecipeService{
		repo:      repo,
		invRepo:   invRepo,
		ingRepo:   ingRepo,
		names:     names,
		ranker:    ranker,
		cocktails: cocktails,
	}
}

// Get 依 id 取得酒譜，查無資料回傳 (nil, nil)
func (s *RecipeService) Get(id uint) (*persistence.Recipe, error) {
	return s.repo.GetByID(id)
}

// List 列出酒譜
func (s *RecipeService) List(skip, limit int) ([]persistence.Recipe, error) {
	return s.repo.List(skip, limit)
}

// ListTags 列出所有標籤
func (s *RecipeService) ListTags(skip, limit int) ([]persistence.Tag, error) {
	return s.repo.ListTags(skip, limit)
}

// ListCategories 列出所有分類
func (s *RecipeService) ListCategories(skip, limit int) ([]persistence.Category, error) {
	return s.repo.ListCategories(skip, limit)
}

// SearchRemote 向外部酒譜資料庫搜尋（不落庫）
func (s *RecipeService) SearchRemote(ctx context.Context, name string) ([]common.RecipeDetail, error) {
	if s.cocktails == nil {
		return nil, common.ErrCocktailDBError
	}
	return s.cocktails.SearchByName(ctx, name)
}

// Import 匯入酒譜。流程：取得完整內容（提交的或遠端查到的）、
// 建立酒譜與標籤關聯、再為每個原料確保目錄與庫存紀錄存在
// （新原料庫存數量 0、狀態 available，同一正規名稱只處理一次）。
func (s *RecipeService) Import(ctx context.Context, input ImportInput) (*persistence.Recipe, error) {
	detail := input.Detail
	if detail == nil {
		if s.cocktails == nil {
			return nil, common.ErrCocktailDBError
		}
		fetched, err := s.cocktails.FetchRecipeDetails(ctx, input.Name)
		if err != nil {
			return nil, err
		}
		if fetched == nil {
			return nil, common.ErrRecipeNotFound
		}
		detail = fetched
	}
	if detail.Name == "" {
		detail.Name = input.Name
	}

	recipe := &persistence.Recipe{
		Name:         detail.Name,
		Alcoholic:    detail.Alcoholic,
		Glass:        detail.Glass,
		Instructions: detail.Instructions,
		Thumb:        detail.Thumb,
	}

	for _, name := range detail.Tags {
		tag, err := s.repo.GetOrCreateTag(name)
		if err != nil {
			return nil, err
		}
		recipe.Tags = append(recipe.Tags, *tag)
	}
	for _, name := range detail.Categories {
		cat, err := s.repo.GetOrCreateCategory(name)
		if err != nil {
			return nil, err
		}
		recipe.Categories = append(recipe.Categories, *cat)
	}
	for _, name := range detail.Ibas {
		iba, err := s.repo.GetOrCreateIba(name)
		if err != nil {
			return nil, err
		}
		recipe.Ibas = append(recipe.Ibas, *iba)
	}
	for _, ri := range detail.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, persistence.RecipeIngredient{
			Name:    ri.Name,
			Measure: ri.Measure,
		})
	}

	if err := s.repo.Create(recipe); err != nil {
		return nil, err
	}

	if err := s.ensureInventory(detail.Ingredients); err != nil {
		return nil, err
	}

	common.LogInfo("酒譜已匯入",
		zap.Uint("id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.Int("原料數", len(recipe.Ingredients)),
	)
	return s.repo.GetByID(recipe.ID)
}

// ensureInventory 確保酒譜原料都有目錄與庫存紀錄，
// 不覆寫既有庫存
func (s *RecipeService) ensureInventory(ingredients []common.RecipeIngredientInput) error {
	seen := make(map[string]struct{})
	for _, ri := range ingredients {
		canonical := s.names.Canonicalize(ri.Name)
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}

		ing, err := s.ingRepo.GetOrCreate(canonical)
		if err != nil {
			return err
		}

		existing, err := s.invRepo.FindByIngredient(ing.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		item := &persistence.InventoryItem{
			IngredientID: ing.ID,
			Quantity:     0,
			Status:       "available",
		}
		if err := s.invRepo.Create(item); err != nil {
			return err
		}
	}
	return nil
}

// Search 依條件搜尋酒譜並附上可用性統計。
// 分頁在資料庫層先套用，之後才計算可用性，所以頁界穩定；
// availableOnly 可能讓單頁結果數少於分頁大小。
func (s *RecipeService) Search(filter persistence.RecipeFilter, availableOnly, orderMissing bool) ([]matching.Ranked, error) {
	recipes, err := s.repo.Search(filter)
	if err != nil {
		return nil, err
	}
	return s.ranker.Rank(asViews(recipes), availableOnly, orderMissing)
}

// Suggest 隨機推薦最多 limit 筆缺貨數不超過 maxMissing 的酒譜
func (s *RecipeService) Suggest(limit int, maxMissing *int) ([]matching.Ranked, error) {
	recipes, err := s.repo.List(0, 0)
	if err != nil {
		return nil, err
	}
	return s.ranker.Suggest(asViews(recipes), limit, maxMissing)
}

// SuggestFiltered 依原料與風味條件隨機推薦
func (s *RecipeService) SuggestFiltered(filter matching.SuggestFilter, limit int) ([]matching.Ranked, error) {
	recipes, err := s.repo.List(0, 0)
	if err != nil {
		return nil, err
	}
	return s.ranker.SuggestFiltered(asViews(recipes), filter, limit)
}

// asViews 轉成比對引擎的酒譜視圖
func asViews(recipes []persistence.Recipe) []matching.RecipeView {
	views := make([]matching.RecipeView, len(recipes))
	for i := range recipes {
		views[i] = &recipes[i]
	}
	return views
}
