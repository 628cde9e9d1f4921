package bar

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleListMacros 列出風味 macro 名稱（排序後）
func (h *Handler) HandleListMacros(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"macros": h.classifier.Names()})
}

// HandleClassifyIngredient 回傳單一原料名稱命中的 macro
func (h *Handler) HandleClassifyIngredient(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":   name,
		"macros": h.classifier.MacrosForIngredient(name),
	})
}
