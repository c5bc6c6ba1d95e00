package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Tsukikage7/pagekit/logger"
)

// memoryCache 内存缓存实现.
type memoryCache struct {
	data      map[string]*cacheItem
	mu        sync.RWMutex
	config    *Config
	logger    logger.Logger
	closeCh   chan struct{}
	closeOnce sync.Once
}

// cacheItem 缓存项.
type cacheItem struct {
	value    string
	expireAt time.Time
	noExpire bool
}

// isExpired 检查是否过期.
func (i *cacheItem) isExpired() bool {
	if i.noExpire {
		return false
	}
	return time.Now().After(i.expireAt)
}

// NewMemoryCache 创建内存缓存.
func NewMemoryCache(config *Config, log logger.Logger) (Cache, error) {
	if log == nil {
		return nil, ErrNilLogger
	}
	if config == nil {
		config = NewMemoryConfig()
	}
	config.ApplyDefaults()

	c := &memoryCache{
		data:    make(map[string]*cacheItem),
		config:  config,
		logger:  log,
		closeCh: make(chan struct{}),
	}

	go c.cleanupLoop()

	log.Debug("[cache] memory cache initialized")
	return c, nil
}

// cleanupLoop 定期清理过期项.
func (m *memoryCache) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.closeCh:
			return
		}
	}
}

// cleanup 清理过期项.
func (m *memoryCache) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, item := range m.data {
		if item.isExpired() {
			delete(m.data, key)
		}
	}
}

// Set 设置键值对，ttl <= 0 表示永不过期.
func (m *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := serialize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok && len(m.data) >= m.config.MaxSize {
		m.evictOne()
	}

	item := &cacheItem{value: data}
	if ttl > 0 {
		item.expireAt = time.Now().Add(ttl)
	} else {
		item.noExpire = true
	}
	m.data[key] = item
	return nil
}

// evictOne 淘汰一个缓存项，优先淘汰过期项.
func (m *memoryCache) evictOne() {
	for key, item := range m.data {
		if item.isExpired() {
			delete(m.data, key)
			return
		}
	}
	for key := range m.data {
		delete(m.data, key)
		return
	}
}

// Get 获取值.
func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	item, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if item.isExpired() {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return item.value, nil
}

// Del 删除键.
func (m *memoryCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// Ping 测试连接（内存缓存始终可用）.
func (m *memoryCache) Ping(ctx context.Context) error {
	return nil
}

// Close 关闭缓存，可重复调用.
func (m *memoryCache) Close() error {
	m.closeOnce.Do(func() {
		close(m.closeCh)
		m.logger.Debug("[cache] memory cache closed")
	})
	return nil
}

// size 返回缓存项数量.
func (m *memoryCache) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
