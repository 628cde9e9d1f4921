package bar

import (
	"net/http"

	"bar-manager/internal/core/bar"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleListInventory 列出庫存
func (h *Handler) HandleListInventory(c *gin.Context) {
	skip, limit := pagination(c)

	out, err := h.inventory.List(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandleGetInventory 依 id 取得庫存項目
func (h *Handler) HandleGetInventory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventory.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		respondError(c, common.ErrInventoryNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleAddInventory 新增庫存，同一原料重複新增會累加數量
func (h *Handler) HandleAddInventory(c *gin.Context) {
	var req bar.InventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	item, err := h.inventory.Add(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// HandleUpdateInventory 局部更新庫存項目（數量／狀態）
func (h *Handler) HandleUpdateInventory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req bar.InventoryPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	item, err := h.inventory.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		respondError(c, common.ErrInventoryNotFound)
		return
	}
	c.JSON(http.StatusOK, item)
}

// HandleDeleteInventory 刪除庫存項目。庫存只會被明確刪除，
// 不會因其他操作而隱式消失
func (h *Handler) HandleDeleteInventory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.inventory.Delete(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, common.ErrInventoryNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAggregateSynonyms 彙整庫存裡指向同一正規名稱的項目
func (h *Handler) HandleAggregateSynonyms(c *gin.Context) {
	reports, err := h.inventory.AggregateSynonyms()
	if err != nil {
		respondError(c, err)
		return
	}
	if reports == nil {
		reports = []bar.MergeReport{}
	}
	c.JSON(http.StatusOK, gin.H{"merged": reports})
}
