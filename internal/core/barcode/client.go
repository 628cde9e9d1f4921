package barcode

import (
	"context"
	"fmt"
	"net/http"

	"bar-manager/internal/infrastructure/config"
	"bar-manager/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Product 條碼查詢結果
type Product struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
}

// Client 條碼商品查詢客戶端（openfoodfacts）
type Client struct {
	client *resty.Client
	cache  ProductCache
}

// NewClient 建立條碼查詢客戶端，cache 可為 nil（不快取）
func NewClient(cfg *config.Config, cache ProductCache) *Client {
	client := resty.New().
		SetBaseURL(cfg.OpenFoodFact.BaseURL).
		SetTimeout(cfg.OpenFoodFact.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client, cache: cache}
}

// productResponse openfoodfacts 回應
type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName   string `json:"product_name"`
		Brands        string `json:"brands"`
		ImageFrontURL string `json:"image_front_url"`
	} `json:"product"`
}

// Lookup 依 EAN 查詢商品，查無資料時回傳 (nil, nil)
func (c *Client) Lookup(ctx context.Context, ean string) (*Product, error) {
	if c.cache != nil {
		if product, ok := c.cache.Get(ctx, ean); ok {
			return product, nil
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/%s.json", ean))
	if err != nil {
		return nil, fmt.Errorf("openfoodfacts lookup failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, nil
	}

	var parsed productResponse
	if err := common.ParseJSONBytes(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 {
		return nil, nil
	}

	product := &Product{
		Name:     parsed.Product.ProductName,
		Brand:    parsed.Product.Brands,
		ImageURL: parsed.Product.ImageFrontURL,
	}

	if c.cache != nil {
		c.cache.Set(ctx, ean, product)
	}

	common.LogDebug("條碼查詢完成",
		zap.String("ean", ean),
		zap.String("name", product.Name),
	)
	return product, nil
}
