package memory

import (
	"context"
	"sync"
	"time"

	"github.com/EgorLis/svgicon/internal/domain"
)

type entry struct {
	val      []byte
	expireAt time.Time // zero => без TTL
}

// Cache — in-process замена Redis. Просроченные ключи удаляются лениво при чтении.
type Cache struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func New() *Cache {
	return &Cache{data: make(map[string]entry), now: time.Now}
}

var _ domain.Cache = (*Cache)(nil)

// Get возвращает nil, nil если ключа нет (как redisx при redis.Nil).
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	if !e.expireAt.IsZero() && !c.now().Before(e.expireAt) {
		delete(c.data, key)
		return nil, nil
	}
	return append([]byte(nil), e.val...), nil
}

func (c *Cache) Set(_ context.Context, key string, val []byte, ttlSeconds int) error {
	e := entry{val: append([]byte(nil), val...)}
	if ttlSeconds > 0 {
		e.expireAt = c.now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.mu.Lock()
	c.data[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Ping(context.Context) error { return nil }

func (c *Cache) Close() {}
