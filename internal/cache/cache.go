package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BelezaApps/salon-agenda/internal/config"
)

const publicPageTTL = 5 * time.Minute

// PublicPageCache guarda o payload da página pública do salão no
// Redis. É o único dado cacheado do sistema: posição de fila e
// agendamentos são sempre recalculados a cada leitura, de propósito.
// Sem Redis configurado, vira no-op.
type PublicPageCache struct {
	rdb *redis.Client
}

func NewPublicPageCache(cfg *config.Config) *PublicPageCache {
	if cfg.RedisAddr == "" {
		return &PublicPageCache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, public page cache disabled: %v", err)
		return &PublicPageCache{}
	}

	return &PublicPageCache{rdb: rdb}
}

func key(slug string) string {
	return "public_page:" + slug
}

func (c *PublicPageCache) Get(ctx context.Context, slug string) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}

	b, err := c.rdb.Get(ctx, key(slug)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *PublicPageCache) Set(ctx context.Context, slug string, payload []byte) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, key(slug), payload, publicPageTTL).Err(); err != nil {
		log.Printf("failed to cache public page %s: %v", slug, err)
	}
}

// Invalidate remove a página do cache após qualquer escrita no salão
// ou nos serviços.
func (c *PublicPageCache) Invalidate(ctx context.Context, slug string) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, key(slug)).Err(); err != nil {
		log.Printf("failed to invalidate public page %s: %v", slug, err)
	}
}
