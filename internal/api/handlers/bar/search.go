package bar

import (
	"net/http"

	"bar-manager/internal/core/matching"
	"bar-manager/internal/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// rankedResponse 搜尋／推薦結果：酒譜加上可用性統計
type rankedResponse struct {
	Recipe         interface{} `json:"recipe"`
	AvailableCount int         `json:"available_count"`
	MissingCount   int         `json:"missing_count"`
}

// asRankedResponses 轉換排序結果為回應格式
func asRankedResponses(ranked []matching.Ranked) []rankedResponse {
	out := make([]rankedResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, rankedResponse{
			Recipe:         r.Recipe,
			AvailableCount: r.AvailableCount,
			MissingCount:   r.MissingCount,
		})
	}
	return out
}

// HandleSearch 搜尋酒譜。文字／屬性過濾與 skip/limit 分頁先在資料庫
// 完成，之後才對該頁計算可用性統計；available_only=true 會把有缺貨
// 的結果剔除（單頁結果數因此可能少於 limit），order_missing=true 則
// 以缺貨數穩定排序
func (h *Handler) HandleSearch(c *gin.Context) {
	skip, limit := pagination(c)
	filter := persistence.RecipeFilter{
		Query:     c.Query("q"),
		Tag:       c.Query("tag"),
		Category:  c.Query("category"),
		Alcoholic: c.Query("alcoholic"),
		Iba:       c.Query("iba"),
		Skip:      skip,
		Limit:     limit,
	}

	ranked, err := h.recipes.Search(filter,
		queryBool(c, "available_only"),
		queryBool(c, "order_missing"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": asRankedResponses(ranked)})
}
