package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ipic-ai/sparky-dashboard/internal/conversation"
	"github.com/ipic-ai/sparky-dashboard/internal/observability/metrics"
	"github.com/ipic-ai/sparky-dashboard/pkg/logging"
)

const (
	cacheKeyConversations = "dashboard:conversations"
	cacheKeyDocumentCount = "dashboard:document_count"
	cacheKeyLastIngestion = "dashboard:last_ingestion"
)

// CachedProvider memoizes fetch results in redis for a bounded window.
// Staleness up to the TTL is acceptable; the summary's generated_at field
// surfaces it to the user. The cache is an optimization only: any redis
// failure degrades to a direct store fetch.
type CachedProvider struct {
	inner   Provider
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.DashboardMetrics
	logger  *logging.Logger
}

// NewCachedProvider wraps a provider with a redis TTL cache.
func NewCachedProvider(inner Provider, client *redis.Client, ttl time.Duration, m *metrics.DashboardMetrics, logger *logging.Logger) *CachedProvider {
	if inner == nil {
		panic("dashboard: inner provider required")
	}
	if client == nil {
		panic("dashboard: redis client required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedProvider{
		inner:   inner,
		redis:   client,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func (p *CachedProvider) Conversations(ctx context.Context) ([]conversation.Conversation, error) {
	var convs []conversation.Conversation
	if p.lookup(ctx, cacheKeyConversations, &convs) {
		return convs, nil
	}
	convs, err := p.inner.Conversations(ctx)
	if err != nil {
		return nil, err
	}
	p.store(ctx, cacheKeyConversations, convs)
	return convs, nil
}

func (p *CachedProvider) DocumentCount(ctx context.Context) (int64, error) {
	var count int64
	if p.lookup(ctx, cacheKeyDocumentCount, &count) {
		return count, nil
	}
	count, err := p.inner.DocumentCount(ctx)
	if err != nil {
		return 0, err
	}
	p.store(ctx, cacheKeyDocumentCount, count)
	return count, nil
}

func (p *CachedProvider) LastIngestion(ctx context.Context) (*time.Time, error) {
	var ts *time.Time
	if p.lookup(ctx, cacheKeyLastIngestion, &ts) {
		return ts, nil
	}
	ts, err := p.inner.LastIngestion(ctx)
	if err != nil {
		return nil, err
	}
	p.store(ctx, cacheKeyLastIngestion, ts)
	return ts, nil
}

// lookup reports whether the key was served from cache, decoding into dest.
func (p *CachedProvider) lookup(ctx context.Context, key string, dest any) bool {
	data, err := p.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.logger.Warn("cache lookup failed, falling back to store", "key", key, "error", err)
		}
		p.metrics.ObserveCache(false)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		p.logger.Warn("discarding undecodable cache entry", "key", key, "error", err)
		p.metrics.ObserveCache(false)
		return false
	}
	p.metrics.ObserveCache(true)
	return true
}

func (p *CachedProvider) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		p.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := p.redis.Set(ctx, key, data, p.ttl).Err(); err != nil {
		p.logger.Warn("failed to write cache entry", "key", key, "error", err)
	}
}
