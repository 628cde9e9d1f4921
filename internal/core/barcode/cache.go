package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bar-manager/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ProductCache 條碼商品快取介面
type ProductCache interface {
	Get(ctx context.Context, ean string) (*Product, bool)
	Set(ctx context.Context, ean string, product *Product)
	Close() error
}

// cacheKey 生成快取鍵
func cacheKey(ean string) string {
	return fmt.Sprintf("barcode:product:%s", ean)
}

// RedisCache redis 版商品快取
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 建立 redis 快取並測試連線
func NewRedisCache(addr string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get 獲取快取的商品
func (c *RedisCache) Get(ctx context.Context, ean string) (*Product, bool) {
	data, err := c.client.Get(ctx, cacheKey(ean)).Bytes()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("條碼快取讀取失敗", zap.Error(err))
		}
		common.LogCacheMiss("barcode", ean)
		return nil, false
	}

	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		common.LogWarn("條碼快取內容損毀", zap.Error(err))
		return nil, false
	}

	common.LogCacheHit("barcode", ean)
	return &product, true
}

// Set 設置快取
func (c *RedisCache) Set(ctx context.Context, ean string, product *Product) {
	data, err := json.Marshal(product)
	if err != nil {
		common.LogWarn("條碼快取序列化失敗", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(ean), data, c.ttl).Err(); err != nil {
		common.LogWarn("條碼快取寫入失敗", zap.Error(err))
	}
}

// Close 關閉 redis 連線
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// memoryEntry 記憶體快取條目
type memoryEntry struct {
	product   Product
	expiresAt time.Time
}

// MemoryCache 記憶體版商品快取，redis 未設定時的後備方案
type MemoryCache struct {
	mu      sync.RWMutex
	store   map[string]memoryEntry
	maxSize int
	ttl     time.Duration
}

// NewMemoryCache 建立記憶體快取
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		store:   make(map[string]memoryEntry),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get 獲取快取的商品
func (c *MemoryCache) Get(ctx context.Context, ean string) (*Product, bool) {
	c.mu.RLock()
	entry, ok := c.store[ean]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		common.LogCacheMiss("barcode", ean)
		return nil, false
	}

	common.LogCacheHit("barcode", ean)
	product := entry.product
	return &product, true
}

// Set 設置快取，滿了先清過期條目，仍滿則淘汰最早到期者
func (c *MemoryCache) Set(ctx context.Context, ean string, product *Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxSize {
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, key)
			}
		}
		if len(c.store) >= c.maxSize {
			var oldestKey string
			var oldestExpiry time.Time
			for key, entry := range c.store {
				if oldestKey == "" || entry.expiresAt.Before(oldestExpiry) {
					oldestKey = key
					oldestExpiry = entry.expiresAt
				}
			}
			delete(c.store, oldestKey)
		}
	}

	c.store[ean] = memoryEntry{
		product:   *product,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Close 清空快取
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]memoryEntry)
	return nil
}
