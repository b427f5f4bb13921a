package cache

import (
	"context"
	"encoding/json"
	"time"

	"tableside/internal/usecase"

	"github.com/redis/go-redis/v9"
)

// RedisMenuCache はメニューのcache-aside。
// 失敗は全部キャッシュミス扱いにして、DBへのフォールバックに任せる。
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{client: client, ttl: ttl}
}

func menuKey(slug string) string {
	return "menu:" + slug
}

func (c *RedisMenuCache) GetMenu(ctx context.Context, slug string) (usecase.MenuResponse, bool) {
	raw, err := c.client.Get(ctx, menuKey(slug)).Bytes()
	if err != nil {
		return usecase.MenuResponse{}, false
	}

	var menu usecase.MenuResponse
	if err := json.Unmarshal(raw, &menu); err != nil {
		return usecase.MenuResponse{}, false
	}
	return menu, true
}

func (c *RedisMenuCache) SetMenu(ctx context.Context, slug string, menu usecase.MenuResponse) {
	raw, err := json.Marshal(menu)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, menuKey(slug), raw, c.ttl).Err()
}

func (c *RedisMenuCache) InvalidateMenu(ctx context.Context, slug string) {
	_ = c.client.Del(ctx, menuKey(slug)).Err()
}
