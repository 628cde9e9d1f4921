package cocktaildb

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"bar-manager/internal/infrastructure/config"
	"bar-manager/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// 外部酒譜資料庫單筆最多帶 15 組原料欄位
const maxIngredientSlots = 15

// Client 外部酒譜資料庫 API 客戶端
type Client struct {
	client *resty.Client
}

// NewClient 建立酒譜資料庫客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.CocktailDB.BaseURL).
		SetTimeout(cfg.CocktailDB.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// searchResponse 搜尋回應。原料與份量以 strIngredient1..15 /
// strMeasure1..15 平鋪，欄位值可能是 null，所以用動態映射接
type searchResponse struct {
	Drinks []map[string]interface{} `json:"drinks"`
}

// SearchByName 依名稱搜尋酒譜，回傳完整內容
func (c *Client) SearchByName(ctx context.Context, name string) ([]common.RecipeDetail, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("s", name).
		Get("/search.php")
	if err != nil {
		return nil, fmt.Errorf("cocktaildb search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("cocktaildb returned status %d", resp.StatusCode())
	}

	var parsed searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse cocktaildb response: %w", err)
	}

	out := make([]common.RecipeDetail, 0, len(parsed.Drinks))
	for _, drink := range parsed.Drinks {
		out = append(out, flattenDrink(drink))
	}

	common.LogDebug("酒譜資料庫搜尋完成",
		zap.String("query", name),
		zap.Int("結果數", len(out)),
	)
	return out, nil
}

// FetchRecipeDetails 依名稱取得第一筆酒譜，查無資料時回傳 (nil, nil)
func (c *Client) FetchRecipeDetails(ctx context.Context, name string) (*common.RecipeDetail, error) {
	results, err := c.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// flattenDrink 把外部 API 的平鋪欄位整理為 RecipeDetail
func flattenDrink(drink map[string]interface{}) common.RecipeDetail {
	detail := common.RecipeDetail{
		Name:         str(drink, "strDrink"),
		Alcoholic:    str(drink, "strAlcoholic"),
		Glass:        str(drink, "strGlass"),
		Instructions: str(drink, "strInstructions"),
		Thumb:        str(drink, "strDrinkThumb"),
		Tags:         splitList(str(drink, "strTags")),
		Categories:   asList(str(drink, "strCategory")),
		Ibas:         asList(str(drink, "strIBA")),
	}

	for i := 1; i <= maxIngredientSlots; i++ {
		name := str(drink, fmt.Sprintf("strIngredient%d", i))
		if strings.TrimSpace(name) == "" {
			continue
		}
		detail.Ingredients = append(detail.Ingredients, common.RecipeIngredientInput{
			Name:    strings.TrimSpace(name),
			Measure: strings.TrimSpace(str(drink, fmt.Sprintf("strMeasure%d", i))),
		})
	}
	return detail
}

// str 取出字串欄位，null 或缺欄回傳空字串
func str(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// splitList 逗號分隔清單
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// asList 單一值包成清單
func asList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{strings.TrimSpace(s)}
}
