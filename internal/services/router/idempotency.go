package router

import (
	"context"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
)

// idempotencyCacheSize bounds the number of remembered trade results.
const idempotencyCacheSize = 4096

// Executor is the trade-execution surface. *Router satisfies it; decorators
// wrap it.
type Executor interface {
	Trade(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error)
}

// CachedExecutor layers an in-memory TTL cache keyed by idempotency key in
// front of an Executor. A repeated logical trade inside the TTL window gets
// the recorded result back instead of executing again. This is an optional
// decorator: the wrapped executor still only threads the key through.
type CachedExecutor struct {
	inner Executor
	cache *boundedTTLCache[string, *domain.TradeResult]
}

func NewCachedExecutor(inner Executor, ttl time.Duration) *CachedExecutor {
	return &CachedExecutor{
		inner: inner,
		cache: newBoundedTTLCache[string, *domain.TradeResult](idempotencyCacheSize, ttl),
	}
}

// Trade returns the cached result for a known unexpired idempotency key, or
// executes and caches. Calls without a key pass straight through: there is
// nothing to dedupe on.
func (e *CachedExecutor) Trade(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error) {
	if params.IdempotencyKey == "" {
		return e.inner.Trade(ctx, params)
	}
	if cached, ok := e.cache.Get(params.IdempotencyKey); ok {
		metrics.IdempotencyCacheHits.Inc()
		return cached, nil
	}
	result, err := e.inner.Trade(ctx, params)
	if err == nil && result != nil {
		e.cache.Set(params.IdempotencyKey, result)
	}
	return result, err
}
