package bar

import (
	"net/http"
	"strconv"
	"strings"

	"bar-manager/internal/core/matching"
	"bar-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleSuggestions 隨機推薦酒譜。limit 預設取設定值，
// max_missing 限制允許的缺貨數（缺漏表示不設限）
func (h *Handler) HandleSuggestions(c *gin.Context) {
	limit := queryInt(c, "limit", h.cfg.Suggestion.DefaultLimit)

	var maxMissing *int
	if raw := c.Query("max_missing"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid max_missing",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		maxMissing = &v
	}

	ranked, err := h.recipes.Suggest(limit, maxMissing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": asRankedResponses(ranked)})
}

// HandleSuggestionsByIngredients 依持有原料與風味條件推薦。
// ingredients 為逗號分隔的原料 id，mode 與 macro_mode 接受
// and（全部符合）或 or（至少一個），預設 and
func (h *Handler) HandleSuggestionsByIngredients(c *gin.Context) {
	ids, ok := parseIDList(c, "ingredients")
	if !ok {
		return
	}

	var maxMissing *int
	if raw := c.Query("max_missing"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid max_missing",
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		maxMissing = &v
	}

	filter := matching.SuggestFilter{
		IngredientIDs: ids,
		Mode:          normalizeMode(c.Query("mode")),
		Macros:        splitList(c.Query("macros")),
		MacroMode:     normalizeMode(c.Query("macro_mode")),
		MaxMissing:    maxMissing,
	}

	limit := queryInt(c, "limit", h.cfg.Suggestion.DefaultLimit)
	ranked, err := h.recipes.SuggestFiltered(filter, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": asRankedResponses(ranked)})
}

// parseIDList 解析逗號分隔的 id 清單查詢參數
func parseIDList(c *gin.Context, name string) ([]uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	out := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + name,
				"code":  common.ErrCodeInvalidRequest,
			})
			return nil, false
		}
		out = append(out, uint(id))
	}
	return out, true
}

// splitList 解析逗號分隔的字串清單
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// normalizeMode 過濾模式只接受 or，其餘一律視為 and
func normalizeMode(mode string) string {
	if strings.EqualFold(mode, matching.ModeOr) {
		return matching.ModeOr
	}
	return matching.ModeAnd
}
