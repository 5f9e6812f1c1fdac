package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const activePricingKey = "cartonera:pricing:active"

// CachedPricingProvider serves the active pricing config from memory, then Redis, then
// the repository. A config change becomes visible to every instance within one TTL;
// the instance that made the change sees it at once through Invalidate.
type CachedPricingProvider struct {
	repo interfaces.IPricingConfigRepository
	rdb  *redis.Client
	ttl  time.Duration
	now  func() time.Time

	mu        sync.RWMutex
	cached    entities.PricingConfig
	expiresAt time.Time
}

var _ interfaces.IPricingConfigProvider = (*CachedPricingProvider)(nil)

// NewCachedPricingProvider accepts a nil Redis client, in which case only the
// in-memory layer is used.
func NewCachedPricingProvider(repo interfaces.IPricingConfigRepository, rdb *redis.Client, ttl time.Duration) *CachedPricingProvider {
	return &CachedPricingProvider{
		repo: repo,
		rdb:  rdb,
		ttl:  ttl,
		now:  time.Now,
	}
}

func (p *CachedPricingProvider) Active(ctx context.Context) (entities.PricingConfig, error) {
	if cfg, ok := p.fromMemory(); ok {
		return cfg, nil
	}

	if cfg, ok := p.fromRedis(ctx); ok {
		p.remember(cfg)
		return cfg, nil
	}

	cfg, err := p.repo.GetActive(ctx)
	if err != nil {
		return entities.PricingConfig{}, err
	}
	if cfg.ID == "" {
		// Nothing active yet; do not cache the miss.
		return cfg, nil
	}
	p.remember(cfg)
	p.toRedis(ctx, cfg)
	return cfg, nil
}

func (p *CachedPricingProvider) Invalidate(ctx context.Context) error {
	p.mu.Lock()
	p.cached = entities.PricingConfig{}
	p.expiresAt = time.Time{}
	p.mu.Unlock()

	if p.rdb == nil {
		return nil
	}
	return p.rdb.Del(ctx, activePricingKey).Err()
}

func (p *CachedPricingProvider) fromMemory() (entities.PricingConfig, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.cached.ID == "" || !p.now().Before(p.expiresAt) {
		return entities.PricingConfig{}, false
	}
	return p.cached, true
}

func (p *CachedPricingProvider) remember(cfg entities.PricingConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = cfg
	p.expiresAt = p.now().Add(p.ttl)
}

func (p *CachedPricingProvider) fromRedis(ctx context.Context) (entities.PricingConfig, bool) {
	if p.rdb == nil {
		return entities.PricingConfig{}, false
	}
	val, err := p.rdb.Get(ctx, activePricingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("[pricing][cache] redis get failed")
		}
		return entities.PricingConfig{}, false
	}
	var cfg entities.PricingConfig
	if err := json.Unmarshal(val, &cfg); err != nil || cfg.ID == "" {
		log.Warn().Err(err).Msg("[pricing][cache] discarding unreadable redis entry")
		return entities.PricingConfig{}, false
	}
	return cfg, true
}

func (p *CachedPricingProvider) toRedis(ctx context.Context, cfg entities.PricingConfig) {
	if p.rdb == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := p.rdb.Set(ctx, activePricingKey, raw, p.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("[pricing][cache] redis set failed")
	}
}

// NewRedisClient returns nil when addr is empty so Redis stays optional.
func NewRedisClient(ctx context.Context, addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("[pricing][cache] redis unreachable, using memory only")
		_ = rdb.Close()
		return nil
	}
	log.Info().Str("addr", addr).Msg("[pricing][cache] redis connected")
	return rdb
}
