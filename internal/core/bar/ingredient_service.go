package bar

import (
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientInput 建立原料的輸入
type IngredientInput struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type,omitempty"`
	Barcode string `json:"barcode,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// IngredientService 原料服務。所有名稱在落庫前先正規化，
// 目錄裡只會出現正規名稱。
type IngredientService struct {
	repo  *persistence.IngredientRepository
	names *synonym.Canonicalizer
}

// NewIngredientService 建立原料服務
func NewIngredientService(repo *persistence.IngredientRepository, names *synonym.Canonicalizer) *IngredientService {
	return &IngredientService{repo: repo, names: names}
}

// List 列出原料
func (s *IngredientService) List(skip, limit int) ([]persistence.Ingredient, error) {
	return s.repo.List(skip, limit)
}

// Get 依 id 取得原料，查無資料回傳 (nil, nil)
func (s *IngredientService) Get(id uint) (*persistence.Ingredient, error) {
	return s.repo.GetByID(id)
}

// Create 建立原料。同一正規名稱已存在時回傳既有紀錄，
// created 標示本次是否新建。
func (s *IngredientService) Create(input IngredientInput) (*persistence.Ingredient, bool, error) {
	canonical := s.names.Canonicalize(input.Name)

	existing, err := s.repo.FindByCanonicalName(canonical)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	ing := &persistence.Ingredient{
		Name:    canonical,
		Type:    input.Type,
		Barcode: input.Barcode,
		Notes:   input.Notes,
	}
	if err := s.repo.Create(ing); err != nil {
		return nil, false, err
	}

	common.LogInfo("原料已建立",
		zap.Uint("id", ing.ID),
		zap.String("name", ing.Name),
	)
	return ing, true, nil
}

// GetOrCreate 依原始名稱取得或建立原料（先正規化）
func (s *IngredientService) GetOrCreate(rawName string) (*persistence.Ingredient, error) {
	return s.repo.GetOrCreate(s.names.Canonicalize(rawName))
}
