package spinfeed

import (
	"sync"

	"github.com/SlpAus/zonk-wheel-backend/pkg/spinapi"
)

// ListCache 缓存历史列表的获取结果，键是列表端点的路径。
// 每次成功提交转盘结果后，对应的缓存项会被标记为失效，
// 下一次读取会重新发起请求——这是跨请求的读己之写保证。
type ListCache struct {
	mu      sync.RWMutex
	entries map[string][]spinapi.SpinRecord
}

// NewListCache 创建一个空的列表缓存。
func NewListCache() *ListCache {
	return &ListCache{
		entries: make(map[string][]spinapi.SpinRecord),
	}
}

// Get 返回指定键的缓存副本。第二个返回值表明是否命中。
func (c *ListCache) Get(key string) ([]spinapi.SpinRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	// 返回副本，避免调用方修改缓存内容
	copied := make([]spinapi.SpinRecord, len(records))
	copy(copied, records)
	return copied, true
}

// Put 写入指定键的缓存内容。
func (c *ListCache) Put(key string, records []spinapi.SpinRecord) {
	stored := make([]spinapi.SpinRecord, len(records))
	copy(stored, records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = stored
}

// Invalidate 将指定键的缓存标记为失效。
func (c *ListCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
