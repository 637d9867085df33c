package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxCost: 最大成本（每个条目成本为 1 时即为条目数上限）
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	numCounters := maxCost * 10
	if numCounters < 1000 {
		numCounters = 1000
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL
func (c *GeneralCache) Set(key string, value interface{}) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 设置缓存，指定 TTL
func (c *GeneralCache) SetWithTTL(key string, value interface{}, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

// Get 获取缓存
func (c *GeneralCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// GetInt 获取整数缓存
func (c *GeneralCache) GetInt(key string) (int, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}

// GetBool 获取布尔缓存
func (c *GeneralCache) GetBool(key string) (bool, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Wait 等待写缓冲落地，ristretto 的 Set 是异步的
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

// Close 关闭缓存
func (c *GeneralCache) Close() {
	c.cache.Close()
}
