package bar

import (
	"net/http"

	"bar-manager/internal/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// HandleListTags 列出所有標籤
func (h *Handler) HandleListTags(c *gin.Context) {
	skip, limit := pagination(c)

	tags, err := h.recipes.ListTags(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if tags == nil {
		tags = []persistence.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// HandleListCategories 列出所有分類
func (h *Handler) HandleListCategories(c *gin.Context) {
	skip, limit := pagination(c)

	categories, err := h.recipes.ListCategories(skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []persistence.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
