package bar

import (
	"net/http"

	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleBarcodeLookup 依 EAN 條碼查詢商品，查無資料回 404
func (h *Handler) HandleBarcodeLookup(c *gin.Context) {
	ean := c.Param("ean")
	if ean == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "ean is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	product, err := h.barcodes.Lookup(c.Request.Context(), ean)
	if err != nil {
		respondError(c, err)
		return
	}
	if product == nil {
		respondError(c, common.ErrBarcodeNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}
