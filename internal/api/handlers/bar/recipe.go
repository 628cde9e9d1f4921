package bar

import (
	"net/http"

	"bar-manager/internal/core/bar"
	"bar-manager/internal/core/measure"
	"bar-manager/internal/infrastructure/persistence"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// recipeResponse 酒譜回應，份量可選擇附上公制換算
type recipeResponse struct {
	*persistence.Recipe
	Ingredients []recipeIngredientResponse `json:"ingredients"`
}

type recipeIngredientResponse struct {
	Name    string `json:"name"`
	Measure string `json:"measure,omitempty"`
}

// renderRecipe 組出酒譜回應，withMetric 時在份量後附加公制換算
func (h *Handler) renderRecipe(recipe *persistence.Recipe, withMetric bool) recipeResponse {
	out := recipeResponse{
		Recipe:      recipe,
		Ingredients: make([]recipeIngredientResponse, 0, len(recipe.Ingredients)),
	}
	for _, ri := range recipe.Ingredients {
		m := ri.Measure
		if withMetric {
			m = measure.WithMetric(m, h.units)
		}
		out.Ingredients = append(out.Ingredients, recipeIngredientResponse{
			Name:    ri.Name,
			Measure: m,
		})
	}
	return out
}

// HandleListRecipes 列出酒譜
func (h *Handler) HandleListRecipes(c *gin.Context) {
	skip, limit := pagination(c)

	recipes, err := h.recipes.List(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	withMetric := queryBool(c, "with_metric")
	out := make([]recipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, h.renderRecipe(&recipes[i], withMetric))
	}
	c.JSON(http.StatusOK, out)
}

// HandleGetRecipe 依 id 取得酒譜，with_metric=true 時份量附上公制換算
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipes.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipe == nil {
		respondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusOK, h.renderRecipe(recipe, queryBool(c, "with_metric")))
}

// HandleImportRecipe 匯入酒譜：只給名稱時向外部酒譜資料庫查詢完整
// 內容，同時為每個原料建立目錄與庫存紀錄
func (h *Handler) HandleImportRecipe(c *gin.Context) {
	var req bar.ImportInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	common.LogInfo("開始匯入酒譜",
		zap.String("name", req.Name),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)

	recipe, err := h.recipes.Import(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.renderRecipe(recipe, false))
}

// HandleSearchRemote 向外部酒譜資料庫搜尋（不落庫）
func (h *Handler) HandleSearchRemote(c *gin.Context) {
	name := c.Query("q")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "q is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	results, err := h.recipes.SearchRemote(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
