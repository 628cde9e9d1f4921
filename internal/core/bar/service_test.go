package bar

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"bar-manager/internal/core/matching"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ingredients *IngredientService
	inventory   *InventoryService
	recipes     *RecipeService
	shopping    *ShoppingService

	ingredientRepo *persistence.IngredientRepository
	inventoryRepo  *persistence.InventoryRepository
	matcher        *matching.Matcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	db, err := persistence.Open(filepath.Join(dir, "bar.db"))
	require.NoError(t, err)

	ingredientStore, err := synonym.NewStore(
		synonym.NewFilePersistence(filepath.Join(dir, "synonyms.json"), synonym.DefaultIngredientAliases()),
		synonym.RecaseIngredient,
	)
	require.NoError(t, err)
	unitStore, err := synonym.NewStore(
		synonym.NewFilePersistence(filepath.Join(dir, "unit_synonyms.json"), synonym.DefaultUnitAliases()),
		synonym.RecaseUnit,
	)
	require.NoError(t, err)

	names := synonym.NewIngredientCanonicalizer(ingredientStore)
	units := synonym.NewUnitCanonicalizer(unitStore)

	ingredientRepo := persistence.NewIngredientRepository(db)
	inventoryRepo := persistence.NewInventoryRepository(db)
	recipeRepo := persistence.NewRecipeRepository(db)
	shoppingRepo := persistence.NewShoppingListRepository(db)

	matcher := matching.NewMatcher(
		persistence.NewCatalog(ingredientRepo),
		persistence.NewInventoryIndex(inventoryRepo),
		names,
	)
	ranker := matching.NewRanker(matcher, nil, rand.New(rand.NewSource(1)))

	return &fixture{
		ingredients:    NewIngredientService(ingredientRepo, names),
		inventory:      NewInventoryService(inventoryRepo, ingredientRepo, names),
		recipes:        NewRecipeService(recipeRepo, inventoryRepo, ingredientRepo, names, ranker, nil),
		shopping:       NewShoppingService(shoppingRepo, recipeRepo, ingredientRepo, matcher, names, units),
		ingredientRepo: ingredientRepo,
		inventoryRepo:  inventoryRepo,
		matcher:        matcher,
	}
}

func daiquiriDetail() *common.RecipeDetail {
	return &common.RecipeDetail{
		Name:         "Daiquiri",
		Alcoholic:    "Alcoholic",
		Glass:        "Cocktail glass",
		Instructions: "Shake with ice and strain.",
		Tags:         []string{"IBA"},
		Categories:   []string{"Ordinary Drink"},
		Ingredients: []common.RecipeIngredientInput{
			{Name: "White Rum", Measure: "2 oz"},
			{Name: "Fresh Lime Juice", Measure: "1 oz"},
			{Name: "Simple Syrup", Measure: "1/2 oz"},
		},
	}
}

func TestIngredientCreateCanonicalizes(t *testing.T) {
	f := newFixture(t)

	ing, created, err := f.ingredients.Create(IngredientInput{Name: "dark rum"})
	require.NoError(t, err)
	assert.True(t, created)
	// 別名表把 dark rum 對應到 Rum
	assert.Equal(t, "Rum", ing.Name)

	// 同一正規名稱回傳既有紀錄
	again, created, err := f.ingredients.Create(IngredientInput{Name: "White RUM"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, ing.ID, again.ID)
}

func TestInventoryAddAccumulates(t *testing.T) {
	f := newFixture(t)

	item, err := f.inventory.Add(InventoryInput{Name: "dark rum", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "Rum", item.Ingredient.Name)

	// 同一原料（經別名）再加：數量累加，不另開一列
	item, err = f.inventory.Add(InventoryInput{Name: "White Rum", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	all, err := f.inventory.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInventoryUpdateAndDelete(t *testing.T) {
	f := newFixture(t)

	item, err := f.inventory.Add(InventoryInput{Name: "Gin", Quantity: 1})
	require.NoError(t, err)

	qty := 0
	status := "empty"
	updated, err := f.inventory.Update(item.ID, InventoryPatch{Quantity: &qty, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, "empty", updated.Status)

	deleted, err := f.inventory.Delete(item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := f.inventory.Update(item.ID, InventoryPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAggregateSynonyms(t *testing.T) {
	f := newFixture(t)

	// 繞過服務層直接建兩筆指向同一正規名稱的庫存
	darkRum := &persistence.Ingredient{Name: "Dark Rum"}
	require.NoError(t, f.ingredientRepo.Create(darkRum))
	rum, err := f.ingredientRepo.GetOrCreate("Rum")
	require.NoError(t, err)

	require.NoError(t, f.inventoryRepo.Create(&persistence.InventoryItem{IngredientID: darkRum.ID, Quantity: 2, Status: "available"}))
	require.NoError(t, f.inventoryRepo.Create(&persistence.InventoryItem{IngredientID: rum.ID, Quantity: 1, Status: "available"}))

	reports, err := f.inventory.AggregateSynonyms()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Rum", reports[0].Canonical)
	assert.Equal(t, 3, reports[0].Quantity)
	assert.Equal(t, []string{"Dark Rum"}, reports[0].Aliases)

	// 合併後只剩正規原料那一列
	item, err := f.inventoryRepo.FindByIngredient(rum.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)

	gone, err := f.inventoryRepo.FindByIngredient(darkRum.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRecipeImportWithDetail(t *testing.T) {
	f := newFixture(t)

	recipe, err := f.recipes.Import(context.Background(), ImportInput{
		Name:   "Daiquiri",
		Detail: daiquiriDetail(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Daiquiri", recipe.Name)
	assert.Len(t, recipe.Ingredients, 3)
	assert.Len(t, recipe.Tags, 1)

	// 每個正規原料都有庫存紀錄：數量 0、狀態 available
	inventory, err := f.inventory.List(0, 0)
	require.NoError(t, err)
	require.Len(t, inventory, 3)
	for _, item := range inventory {
		assert.Equal(t, 0, item.Quantity)
		assert.Equal(t, "available", item.Status)
	}

	// 別名已套用：White Rum → Rum，Fresh Lime Juice → Lime Juice
	rum, err := f.ingredientRepo.FindByCanonicalName("Rum")
	require.NoError(t, err)
	assert.NotNil(t, rum)
	lime, err := f.ingredientRepo.FindByCanonicalName("Lime Juice")
	require.NoError(t, err)
	assert.NotNil(t, lime)
}

func TestRecipeImportDoesNotResetInventory(t *testing.T) {
	f := newFixture(t)

	_, err := f.inventory.Add(InventoryInput{Name: "White Rum", Quantity: 5})
	require.NoError(t, err)

	_, err = f.recipes.Import(context.Background(), ImportInput{Name: "Daiquiri", Detail: daiquiriDetail()})
	require.NoError(t, err)

	rum, err := f.ingredientRepo.FindByCanonicalName("Rum")
	require.NoError(t, err)
	item, err := f.inventoryRepo.FindByIngredient(rum.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity, "匯入不得覆寫既有庫存")
}

func TestRecipeImportRequiresRemoteWhenNoDetail(t *testing.T) {
	f := newFixture(t)

	// 沒接外部酒譜資料庫又沒附內容
	_, err := f.recipes.Import(context.Background(), ImportInput{Name: "Daiquiri"})
	assert.ErrorIs(t, err, common.ErrCocktailDBError)
}

func TestSearchAnnotatesAvailability(t *testing.T) {
	f := newFixture(t)

	_, err := f.recipes.Import(context.Background(), ImportInput{Name: "Daiquiri", Detail: daiquiriDetail()})
	require.NoError(t, err)

	// 只補 Rum 與 Lime Juice
	_, err = f.inventory.Add(InventoryInput{Name: "White Rum", Quantity: 1})
	require.NoError(t, err)
	_, err = f.inventory.Add(InventoryInput{Name: "Lime Juice", Quantity: 1})
	require.NoError(t, err)

	ranked, err := f.recipes.Search(persistence.RecipeFilter{}, false, false)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, 2, ranked[0].AvailableCount)
	assert.Equal(t, 1, ranked[0].MissingCount)

	// available_only 會剔除缺貨酒譜
	ranked, err = f.recipes.Search(persistence.RecipeFilter{}, true, false)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	// 補齊後就包含
	_, err = f.inventory.Add(InventoryInput{Name: "Simple Syrup", Quantity: 1})
	require.NoError(t, err)
	ranked, err = f.recipes.Search(persistence.RecipeFilter{}, true, false)
	require.NoError(t, err)
	assert.Len(t, ranked, 1)
}

func TestShoppingFromRecipe(t *testing.T) {
	f := newFixture(t)

	recipe, err := f.recipes.Import(context.Background(), ImportInput{Name: "Daiquiri", Detail: daiquiriDetail()})
	require.NoError(t, err)

	_, err = f.inventory.Add(InventoryInput{Name: "White Rum", Quantity: 1})
	require.NoError(t, err)

	items, err := f.shopping.FromRecipe(recipe.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byUnit := make(map[uint]string)
	for _, item := range items {
		assert.Equal(t, 1, item.Quantity)
		require.NotNil(t, item.RecipeID)
		assert.Equal(t, recipe.ID, *item.RecipeID)
		byUnit[item.IngredientID] = item.Unit
	}
	// 單位來自酒譜份量字串的解析（oz）
	for _, unit := range byUnit {
		assert.Equal(t, "oz", unit)
	}

	// 查無酒譜回 (nil, nil)
	missing, err := f.shopping.FromRecipe(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestShoppingAddAndClear(t *testing.T) {
	f := newFixture(t)

	gin, err := f.ingredients.GetOrCreate("Gin")
	require.NoError(t, err)

	item, err := f.shopping.Add(ShoppingItemInput{IngredientID: gin.ID, Quantity: 2, Unit: "oz"})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "Gin", item.Ingredient.Name)

	_, err = f.shopping.Add(ShoppingItemInput{IngredientID: 9999})
	assert.ErrorIs(t, err, common.ErrIngredientNotFound)

	require.NoError(t, f.shopping.Clear())
	list, err := f.shopping.List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
