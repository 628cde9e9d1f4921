package bar

import (
	"net/http"

	"bar-manager/internal/core/bar"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleListShopping 列出購物清單
func (h *Handler) HandleListShopping(c *gin.Context) {
	skip, limit := pagination(c)

	out, err := h.shopping.List(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandleAddShoppingItem 手動新增購物清單項目
func (h *Handler) HandleAddShoppingItem(c *gin.Context) {
	var req bar.ShoppingItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	item, err := h.shopping.Add(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// HandleShoppingFromRecipe 把酒譜的缺貨原料加入購物清單
func (h *Handler) HandleShoppingFromRecipe(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.shopping.FromRecipe(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		respondError(c, common.ErrRecipeNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

// HandleDeleteShoppingItem 刪除購物清單項目
func (h *Handler) HandleDeleteShoppingItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.shopping.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, common.ErrNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleClearShopping 清空購物清單
func (h *Handler) HandleClearShopping(c *gin.Context) {
	if err := h.shopping.Clear(); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
