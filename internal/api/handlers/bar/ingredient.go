package bar

import (
	"net/http"

	"bar-manager/internal/core/bar"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleListIngredients 列出原料
func (h *Handler) HandleListIngredients(c *gin.Context) {
	skip, limit := pagination(c)

	out, err := h.ingredients.List(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandleGetIngredient 依 id 取得原料
func (h *Handler) HandleGetIngredient(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ing, err := h.ingredients.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if ing == nil {
		respondError(c, common.ErrIngredientNotFound)
		return
	}
	c.JSON(http.StatusOK, ing)
}

// HandleCreateIngredient 建立原料。名稱先正規化，同名（正規化後）
// 已存在時回傳既有紀錄
func (h *Handler) HandleCreateIngredient(c *gin.Context) {
	var req bar.IngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	ing, created, err := h.ingredients.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, ing)
		return
	}
	c.JSON(http.StatusOK, ing)
}
