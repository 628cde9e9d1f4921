package bar

import (
	"errors"
	"net/http"
	"strconv"

	"bar-manager/internal/core/bar"
	"bar-manager/internal/core/barcode"
	"bar-manager/internal/core/macro"
	"bar-manager/internal/core/synonym"
	"bar-manager/internal/infrastructure/config"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 清單查詢的預設分頁大小
const defaultPageSize = 100

// Handler 酒吧管理 API 處理程序
type Handler struct {
	cfg         *config.Config
	ingredients *bar.IngredientService
	inventory   *bar.InventoryService
	recipes     *bar.RecipeService
	shopping    *bar.ShoppingService
	barcodes    *barcode.Client
	classifier  *macro.Classifier

	ingredientSynonyms *synonym.Store
	unitSynonyms       *synonym.Store
	units              *synonym.Canonicalizer
}

// NewHandler 創建新的處理程序
func NewHandler(
	cfg *config.Config,
	ingredients *bar.IngredientService,
	inventory *bar.InventoryService,
	recipes *bar.RecipeService,
	shopping *bar.ShoppingService,
	barcodes *barcode.Client,
	classifier *macro.Classifier,
	ingredientSynonyms *synonym.Store,
	unitSynonyms *synonym.Store,
	units *synonym.Canonicalizer,
) *Handler {
	return &Handler{
		cfg:                cfg,
		ingredients:        ingredients,
		inventory:          inventory,
		recipes:            recipes,
		shopping:           shopping,
		barcodes:           barcodes,
		classifier:         classifier,
		ingredientSynonyms: ingredientSynonyms,
		unitSynonyms:       unitSynonyms,
		units:              units,
	}
}

// paramID 解析路徑參數裡的數字 id，失敗時回應 400
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid " + name,
			"code":  common.ErrCodeInvalidRequest,
		})
		return 0, false
	}
	return uint(id), true
}

// queryInt 解析整數查詢參數，缺漏或格式錯誤時用預設值
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryBool 解析布林查詢參數
func queryBool(c *gin.Context, name string) bool {
	raw := c.Query(name)
	return raw == "true" || raw == "1"
}

// pagination 解析 skip/limit 查詢參數
func pagination(c *gin.Context) (skip, limit int) {
	skip = queryInt(c, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit = queryInt(c, "limit", defaultPageSize)
	return skip, limit
}

// respondError 統一錯誤回應：驗證錯誤 400、業務錯誤用其狀態碼、
// 其餘一律 500
func respondError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, gin.H{
			"error": custom.Message,
			"code":  custom.Code,
		})
		return
	}

	if common.IsStorageError(err) {
		common.LogError("別名表持久化失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "synonym storage failure",
			"code":  "STORAGE_ERROR",
		})
		return
	}

	common.LogError("請求處理失敗",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
		"code":  common.ErrCodeInternalError,
	})
}
