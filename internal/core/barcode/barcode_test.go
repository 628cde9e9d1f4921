package barcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"bar-manager/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	cache := NewMemoryCache(10, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "123")
	assert.False(t, ok)

	cache.Set(ctx, "123", &Product{Name: "Angostura Bitters", Brand: "Angostura"})
	product, ok := cache.Get(ctx, "123")
	require.True(t, ok)
	assert.Equal(t, "Angostura Bitters", product.Name)
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(10, 10*time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "123", &Product{Name: "Rum"})
	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get(ctx, "123")
	assert.False(t, ok)
}

func TestMemoryCacheEvictsWhenFull(t *testing.T) {
	cache := NewMemoryCache(2, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "a", &Product{Name: "A"})
	cache.Set(ctx, "b", &Product{Name: "B"})
	cache.Set(ctx, "c", &Product{Name: "C"})

	// 最早到期的被淘汰，最新寫入的一定留著
	product, ok := cache.Get(ctx, "c")
	require.True(t, ok)
	assert.Equal(t, "C", product.Name)
	_, okA := cache.Get(ctx, "a")
	_, okB := cache.Get(ctx, "b")
	assert.False(t, okA && okB)
}

func testClient(serverURL string, cache ProductCache) *Client {
	return NewClient(&config.Config{
		OpenFoodFact: config.OpenFoodFactConfig{
			BaseURL: serverURL,
			Timeout: 5 * time.Second,
		},
	}, cache)
}

func TestLookup(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/737628064502.json":
			w.Write([]byte(`{"status": 1, "product": {"product_name": "Tonic Water", "brands": "Fever-Tree", "image_front_url": "https://example.test/tonic.jpg"}}`))
		default:
			w.Write([]byte(`{"status": 0}`))
		}
	}))
	defer server.Close()

	client := testClient(server.URL, NewMemoryCache(10, time.Minute))
	ctx := context.Background()

	product, err := client.Lookup(ctx, "737628064502")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Tonic Water", product.Name)
	assert.Equal(t, "Fever-Tree", product.Brand)

	// 第二次查詢走快取，不再打外部服務
	_, err = client.Lookup(ctx, "737628064502")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// status 0 視為查無資料
	product, err = client.Lookup(ctx, "000000000000")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestLookupWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	product, err := testClient(server.URL, nil).Lookup(context.Background(), "123")
	require.NoError(t, err)
	assert.Nil(t, product)
}
