package bar

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	barService "bar-manager/internal/core/bar"
	"bar-manager/internal/core/macro"
	"bar-manager/internal/core/matching"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/config"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *barService.InventoryService, *barService.RecipeService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
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
	classifier := macro.NewClassifier(macro.Lexicon{
		"sour":  {"lime", "lemon"},
		"sweet": {"syrup", "sugar"},
	})

	ingredientRepo := persistence.NewIngredientRepository(db)
	inventoryRepo := persistence.NewInventoryRepository(db)
	recipeRepo := persistence.NewRecipeRepository(db)
	shoppingRepo := persistence.NewShoppingListRepository(db)

	matcher := matching.NewMatcher(
		persistence.NewCatalog(ingredientRepo),
		persistence.NewInventoryIndex(inventoryRepo),
		names,
	)
	ranker := matching.NewRanker(matcher, classifier, rand.New(rand.NewSource(1)))

	cfg := &config.Config{
		Database:   config.DatabaseConfig{Path: filepath.Join(dir, "bar.db")},
		Suggestion: config.SuggestionConfig{DefaultLimit: 3},
	}

	ingredientSvc := barService.NewIngredientService(ingredientRepo, names)
	inventorySvc := barService.NewInventoryService(inventoryRepo, ingredientRepo, names)
	recipeSvc := barService.NewRecipeService(recipeRepo, inventoryRepo, ingredientRepo, names, ranker, nil)
	shoppingSvc := barService.NewShoppingService(shoppingRepo, recipeRepo, ingredientRepo, matcher, names, units)

	handler := NewHandler(cfg, ingredientSvc, inventorySvc, recipeSvc, shoppingSvc, nil, classifier, ingredientStore, unitStore, units)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/search", handler.HandleSearch)
	api.GET("/suggestions", handler.HandleSuggestions)
	api.GET("/suggestions/by-ingredients", handler.HandleSuggestionsByIngredients)
	api.GET("/macros", handler.HandleListMacros)
	api.GET("/tags", handler.HandleListTags)
	api.GET("/categories", handler.HandleListCategories)
	for _, domain := range []string{"ingredients", "units"} {
		group := api.Group("/synonyms/" + domain)
		group.GET("", handler.HandleListSynonyms(domain))
		group.POST("", handler.HandleUpsertSynonym(domain))
		group.DELETE("/:alias", handler.HandleRemoveSynonym(domain))
	}
	api.POST("/ingredients", handler.HandleCreateIngredient)
	api.GET("/ingredients/:id", handler.HandleGetIngredient)

	return router, inventorySvc, recipeSvc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSynonymEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	// 新增別名
	w := doJSON(t, router, http.MethodPost, "/api/v1/synonyms/ingredients",
		common.SynonymEntry{Alias: "Navy Rum", Canonical: "rum"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// 空 canonical → 400
	w = doJSON(t, router, http.MethodPost, "/api/v1/synonyms/ingredients",
		map[string]string{"alias": "x", "canonical": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 造成多跳的對應 → 400
	w = doJSON(t, router, http.MethodPost, "/api/v1/synonyms/ingredients",
		common.SynonymEntry{Alias: "spiced rum", Canonical: "Navy Rum"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 列表含預設與新加的別名
	w = doJSON(t, router, http.MethodGet, "/api/v1/synonyms/ingredients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Synonyms []common.SynonymEntry `json:"synonyms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	aliases := make(map[string]string)
	for _, e := range listed.Synonyms {
		aliases[e.Alias] = e.Canonical
	}
	assert.Equal(t, "Rum", aliases["navy rum"])
	assert.Equal(t, "Rum", aliases["dark rum"])

	// 刪除是冪等的
	w = doJSON(t, router, http.MethodDelete, "/api/v1/synonyms/ingredients/navy%20rum", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(t, router, http.MethodDelete, "/api/v1/synonyms/ingredients/navy%20rum", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIngredientEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", barService.IngredientInput{Name: "dark rum"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created persistence.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Rum", created.Name)

	// 缺 name → 400
	w = doJSON(t, router, http.MethodPost, "/api/v1/ingredients", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 查無 → 404
	w = doJSON(t, router, http.MethodGet, "/api/v1/ingredients/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非數字 id → 400
	w = doJSON(t, router, http.MethodGet, "/api/v1/ingredients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionParamValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/suggestions?max_missing=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions/by-ingredients?ingredients=1,abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/suggestions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSearchEndpointAnnotations(t *testing.T) {
	router, inventorySvc, recipeSvc := newTestRouter(t)

	_, err := recipeSvc.Import(context.Background(), barService.ImportInput{
		Name: "Gimlet",
		Detail: &common.RecipeDetail{
			Name: "Gimlet",
			Ingredients: []common.RecipeIngredientInput{
				{Name: "Gin", Measure: "2 oz"},
				{Name: "Fresh Lime Juice", Measure: "1 oz"},
			},
		},
	})
	require.NoError(t, err)

	_, err = inventorySvc.Add(barService.InventoryInput{Name: "Gin", Quantity: 1})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/api/v1/search?q=gim", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			AvailableCount int `json:"available_count"`
			MissingCount   int `json:"missing_count"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].AvailableCount)
	assert.Equal(t, 1, resp.Results[0].MissingCount)

	// available_only 剔除缺貨的酒譜
	w = doJSON(t, router, http.MethodGet, "/api/v1/search?q=gim&available_only=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Results)
}

func TestTaxonomyEndpoints(t *testing.T) {
	router, _, recipeSvc := newTestRouter(t)

	// 空資料庫回傳空陣列而非 null
	w := doJSON(t, router, http.MethodGet, "/api/v1/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tags": []}`, w.Body.String())

	_, err := recipeSvc.Import(context.Background(), barService.ImportInput{
		Name: "Daiquiri",
		Detail: &common.RecipeDetail{
			Name:       "Daiquiri",
			Tags:       []string{"IBA", "Classic"},
			Categories: []string{"Ordinary Drink"},
			Ingredients: []common.RecipeIngredientInput{
				{Name: "White Rum", Measure: "2 oz"},
			},
		},
	})
	require.NoError(t, err)

	w = doJSON(t, router, http.MethodGet, "/api/v1/tags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tagResp struct {
		Tags []persistence.Tag `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tagResp))
	require.Len(t, tagResp.Tags, 2)
	assert.Equal(t, "IBA", tagResp.Tags[0].Name)

	w = doJSON(t, router, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var catResp struct {
		Categories []persistence.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catResp))
	require.Len(t, catResp.Categories, 1)
	assert.Equal(t, "Ordinary Drink", catResp.Categories[0].Name)
}

func TestRecipeResponseEmptyIngredients(t *testing.T) {
	h := &Handler{}

	data, err := json.Marshal(h.renderRecipe(&persistence.Recipe{Name: "Neat Pour"}, false))
	require.NoError(t, err)
	// 沒有原料時序列化成空陣列而非 null
	assert.Contains(t, string(data), `"ingredients":[]`)
}

func TestMacroEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/macros", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Macros []string `json:"macros"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"sour", "sweet"}, resp.Macros)
}
