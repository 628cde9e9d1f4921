package bar

import (
	"fmt"

	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"go.uber.org/zap"
)

// InventoryInput 新增庫存的輸入。IngredientID 與 Name 擇一，
// 給 Name 時原料不存在會先建立。
type InventoryInput struct {
	IngredientID uint   `json:"ingredient_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status,omitempty"`
}

// InventoryPatch 更新庫存的輸入，nil 欄位表示不變
type InventoryPatch struct {
	Quantity *int    `json:"quantity,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// MergeReport 別名彙整結果：同一正規名稱底下被合併的項目
type MergeReport struct {
	Canonical string   `json:"canonical"`
	MergedIDs []uint   `json:"merged_ids"`
	Aliases   []string `json:"aliases"`
	Quantity  int      `json:"quantity"`
}

// InventoryService 庫存服務
type InventoryService struct {
	repo    *persistence.InventoryRepository
	ingRepo *persistence.IngredientRepository
	names   *synonym.Canonicalizer
}

// NewInventoryService 建立庫存服務
func NewInventoryService(
	repo *persistence.InventoryRepository,
	ingRepo *persistence.IngredientRepository,
	names *synonym.Canonicalizer,
) *InventoryService {
	return &InventoryService{repo: repo, ingRepo: ingRepo, names: names}
}

// List 列出庫存項目
func (s *InventoryService) List(skip, limit int) ([]persistence.InventoryItem, error) {
	return s.repo.List(skip, limit)
}

// Get 依 id 取得庫存項目，查無資料回傳 (nil, nil)
func (s *InventoryService) Get(id uint) (*persistence.InventoryItem, error) {
	return s.repo.GetByID(id)
}

// Add 新增庫存。同一原料重複新增時累加數量而不是另開一列，
// 每個原料在庫存裡最多一列。
func (s *InventoryService) Add(input InventoryInput) (*persistence.InventoryItem, error) {
	ing, err := s.resolveIngredient(input)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, common.ErrIngredientNotFound
	}

	existing, err := s.repo.FindByIngredient(ing.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		if input.Status != "" {
			existing.Status = input.Status
		}
		if err := s.repo.Save(existing); err != nil {
			return nil, err
		}
		return s.repo.GetByID(existing.ID)
	}

	status := input.Status
	if status == "" {
		status = "available"
	}
	item := &persistence.InventoryItem{
		IngredientID: ing.ID,
		Quantity:     input.Quantity,
		Status:       status,
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}

	common.LogInfo("庫存項目已建立",
		zap.Uint("ingredient_id", ing.ID),
		zap.Int("quantity", item.Quantity),
	)
	return s.repo.GetByID(item.ID)
}

// resolveIngredient 依輸入取得原料：優先用 id，否則用名稱 get-or-create
func (s *InventoryService) resolveIngredient(input InventoryInput) (*persistence.Ingredient, error) {
	if input.IngredientID != 0 {
		return s.ingRepo.GetByID(input.IngredientID)
	}
	if input.Name == "" {
		return nil, common.NewValidationError("ingredient_id or name is required")
	}
	return s.ingRepo.GetOrCreate(s.names.Canonicalize(input.Name))
}

// Update 局部更新庫存項目，查無資料回傳 (nil, nil)
func (s *InventoryService) Update(id uint, patch InventoryPatch) (*persistence.InventoryItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if err := s.repo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 刪除庫存項目，回傳是否有刪到
func (s *InventoryService) Delete(id uint) (bool, error) {
	return s.repo.Delete(id)
}

// AggregateSynonyms 彙整庫存裡指向同一正規名稱的原料：
// 數量累加到正規原料的那一列，其餘列刪除。只回報真的有
// 合併發生的群組。
func (s *InventoryService) AggregateSynonyms() ([]MergeReport, error) {
	items, err := s.repo.All()
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]persistence.InventoryItem)
	order := make([]string, 0)
	for _, item := range items {
		canonical := s.names.Canonicalize(item.Ingredient.Name)
		if _, ok := groups[canonical]; !ok {
			order = append(order, canonical)
		}
		groups[canonical] = append(groups[canonical], item)
	}

	var reports []MergeReport
	for _, canonical := range order {
		group := groups[canonical]
		if len(group) < 2 {
			continue
		}

		target, err := s.ingRepo.GetOrCreate(canonical)
		if err != nil {
			return nil, err
		}

		report := MergeReport{Canonical: canonical}
		total := 0
		var keep *persistence.InventoryItem
		for i := range group {
			item := group[i]
			total += item.Quantity
			if item.IngredientID == target.ID {
				keep = &group[i]
				continue
			}
			report.MergedIDs = append(report.MergedIDs, item.ID)
			report.Aliases = append(report.Aliases, item.Ingredient.Name)
		}

		if keep == nil {
			keep = &persistence.InventoryItem{
				IngredientID: target.ID,
				Status:       "available",
			}
			if err := s.repo.Create(keep); err != nil {
				return nil, err
			}
		}
		keep.Quantity = total
		if err := s.repo.Save(keep); err != nil {
			return nil, err
		}

		for _, id := range report.MergedIDs {
			if _, err := s.repo.Delete(id); err != nil {
				return nil, fmt.Errorf("failed to remove merged inventory item %d: %w", id, err)
			}
		}

		report.Quantity = total
		reports = append(reports, report)

		common.LogInfo("庫存別名已彙整",
			zap.String("canonical", canonical),
			zap.Int("merged", len(report.MergedIDs)),
			zap.Int("quantity", total),
		)
	}
	return reports, nil
}
