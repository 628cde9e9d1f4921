package matching

// Matcher 可用性比對：逐一正規化酒譜原料並對照庫存
type Matcher struct {
	catalog   IngredientCatalog
	inventory InventoryLookup
	names     NameCanonicalizer
}

// NewMatcher 建立可用性比對器
func NewMatcher(catalog IngredientCatalog, inventory InventoryLookup, names NameCanonicalizer) *Matcher {
	return &Matcher{
		catalog:   catalog,
		inventory: inventory,
		names:     names,
	}
}

// missing 判斷單一原料是否缺貨：目錄查無原料、無庫存紀錄、或數量 ≤ 0
func (m *Matcher) missing(rawName string) (bool, *IngredientRef, error) {
	canonical := m.names.Canonicalize(rawName)

	ing, err := m.catalog.FindByCanonicalName(canonical)
	if err != nil {
		return false, nil, err
	}
	if ing == nil {
		return true, nil, nil
	}

	item, err := m.inventory.FindByIngredient(ing.ID)
	if err != nil {
		return false, nil, err
	}
	if item == nil || item.Quantity <= 0 {
		return true, ing, nil
	}
	return false, ing, nil
}

// MissingCount 回傳酒譜缺貨原料數量。純查詢，不改動目錄。
func (m *Matcher) MissingCount(recipe RecipeView) (int, error) {
	count := 0
	for _, ri := range recipe.RecipeIngredients() {
		miss, _, err := m.missing(ri.Name)
		if err != nil {
			return 0, err
		}
		if miss {
			count++
		}
	}
	return count, nil
}

// Counts 回傳 (可用數, 缺貨數)
func (m *Matcher) Counts(recipe RecipeView) (available, missingCount int, err error) {
	missingCount, err = m.MissingCount(recipe)
	if err != nil {
		return 0, 0, err
	}
	return len(recipe.RecipeIngredients()) - missingCount, missingCount, nil
}

// MissingIngredients 回傳酒譜的缺貨原料。
// 注意：這是明確的寫入路徑——缺貨原料若不在目錄中會被建立
// （get-or-create），目錄因此可能成長；需要唯讀視圖的呼叫端
// 應改用 MissingCount。同一正規名稱只回傳一次。
func (m *Matcher) MissingIngredients(recipe RecipeView) ([]IngredientRef, error) {
	seen := make(map[string]struct{})
	var out []IngredientRef

	for _, ri := range recipe.RecipeIngredients() {
		canonical := m.names.Canonicalize(ri.Name)
		if _, dup := seen[canonical]; dup {
			continue
		}

		miss, ing, err := m.missing(ri.Name)
		if err != nil {
			return nil, err
		}
		if !miss {
			continue
		}
		seen[canonical] = struct{}{}

		if ing == nil {
			created, err := m.catalog.Create(canonical)
			if err != nil {
				return nil, err
			}
			ing = created
		}
		out = append(out, *ing)
	}
	return out, nil
}

// ingredientIDSet 回傳酒譜正規化後的原料 id 集合，目錄查無的原料不計入
func (m *Matcher) ingredientIDSet(recipe RecipeView) (map[uint]struct{}, error) {
	ids := make(map[uint]struct{})
	for _, ri := range recipe.RecipeIngredients() {
		canonical := m.names.Canonicalize(ri.Name)
		ing, err := m.catalog.FindByCanonicalName(canonical)
		if err != nil {
			return nil, err
		}
		if ing != nil {
			ids[ing.ID] = struct{}{}
		}
	}
	return ids, nil
}
