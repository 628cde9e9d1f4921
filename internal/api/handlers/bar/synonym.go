package bar

import (
	"net/http"

	"bar-manager/internal/core/synonym"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// synonymStore 依路徑網域取對應的別名表
func (h *Handler) synonymStore(domain string) *synonym.Store {
	if domain == "units" {
		return h.unitSynonyms
	}
	return h.ingredientSynonyms
}

// HandleListSynonyms 列出別名對應（依別名排序）
func (h *Handler) HandleListSynonyms(domain string) gin.HandlerFunc {
	store := h.synonymStore(domain)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"synonyms": store.List()})
	}
}

// HandleUpsertSynonym 新增或更新一筆別名對應。
// 空值或會造成多跳解析的對應回 400
func (h *Handler) HandleUpsertSynonym(domain string) gin.HandlerFunc {
	store := h.synonymStore(domain)
	return func(c *gin.Context) {
		var req common.SynonymEntry
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}

		entry, err := store.Upsert(req.Alias, req.Canonical)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// HandleRemoveSynonym 移除一筆別名，對不存在的別名也回成功
func (h *Handler) HandleRemoveSynonym(domain string) gin.HandlerFunc {
	store := h.synonymStore(domain)
	return func(c *gin.Context) {
		if err := store.Remove(c.Param("alias")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleBulkImportSynonyms 批量匯入別名對應，任一筆驗證失敗整批不寫
func (h *Handler) HandleBulkImportSynonyms(domain string) gin.HandlerFunc {
	store := h.synonymStore(domain)
	return func(c *gin.Context) {
		var mapping map[string]string
		if err := c.ShouldBindJSON(&mapping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}

		if err := store.BulkImport(mapping); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"imported": len(mapping), "total": store.Len()})
	}
}
