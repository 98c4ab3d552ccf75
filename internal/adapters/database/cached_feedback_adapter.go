package database

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/providers"
	"github.com/zatekoja/feedbacker/internal/domain/repositories"
	"github.com/zatekoja/feedbacker/internal/infrastructure/observability"
)

const (
	// FeedbackListCacheKey prefixes the serialized recency-ordered list.
	FeedbackListCacheKey = "feedback:list"

	// FeedbackListGenerationKey counts committed writes. It never expires.
	FeedbackListGenerationKey = "feedback:list:gen"
)

// FeedbackListKey is the cache key of the list read under generation gen.
func FeedbackListKey(gen int64) string {
	return FeedbackListCacheKey + ":" + strconv.FormatInt(gen, 10)
}

// CachedFeedbackAdapter wraps a feedback gateway with a read-through list cache.
//
// Lists are cached under the write generation observed before the store read.
// Writes bump the generation once committed, so a snapshot taken before a write
// lands on a key no later reader looks up.
type CachedFeedbackAdapter struct {
	adapter    repositories.FeedbackRepository
	cache      providers.CacheProvider
	ttlSeconds int
	metrics    *observability.Metrics
}

var _ repositories.FeedbackRepository = (*CachedFeedbackAdapter)(nil)

// NewCachedFeedbackAdapter creates a new cached feedback adapter
func NewCachedFeedbackAdapter(adapter repositories.FeedbackRepository, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *CachedFeedbackAdapter {
	return &CachedFeedbackAdapter{
		adapter:    adapter,
		cache:      cache,
		ttlSeconds: ttlSeconds,
		metrics:    metrics,
	}
}

// Create persists feedback and invalidates the list
func (a *CachedFeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	if err := a.adapter.Create(ctx, feedback); err != nil {
		return err
	}
	a.invalidate(ctx)
	return nil
}

// ListByRecency serves the list from cache, falling back to the store
func (a *CachedFeedbackAdapter) ListByRecency(ctx context.Context) ([]*entities.Feedback, error) {
	gen, err := a.generation(ctx)
	if err != nil {
		log.Warn().Err(err).Str("key", FeedbackListGenerationKey).Msg("Failed to read feedback list generation, bypassing cache")
		return a.adapter.ListByRecency(ctx)
	}
	key := FeedbackListKey(gen)

	if cached, err := a.cache.Get(ctx, key); err == nil {
		var feedback []*entities.Feedback
		if err := json.Unmarshal(cached, &feedback); err == nil {
			observability.RecordCacheHit(ctx, a.metrics, FeedbackListCacheKey)
			if feedback == nil {
				feedback = make([]*entities.Feedback, 0)
			}
			return feedback, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached feedback list")
	}
	observability.RecordCacheMiss(ctx, a.metrics, FeedbackListCacheKey)

	feedback, err := a.adapter.ListByRecency(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(feedback); err == nil {
		if err := a.cache.Set(ctx, key, data, a.ttlSeconds); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache feedback list")
		}
	}

	return feedback, nil
}

// DeleteByID deletes feedback and invalidates the list when something was removed
func (a *CachedFeedbackAdapter) DeleteByID(ctx context.Context, id string) (bool, error) {
	existed, err := a.adapter.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existed {
		a.invalidate(ctx)
	}
	return existed, nil
}

// generation returns the current write generation; zero before the first write.
func (a *CachedFeedbackAdapter) generation(ctx context.Context) (int64, error) {
	raw, err := a.cache.Get(ctx, FeedbackListGenerationKey)
	if errors.Is(err, providers.ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}

func (a *CachedFeedbackAdapter) invalidate(ctx context.Context) {
	if _, err := a.cache.Incr(ctx, FeedbackListGenerationKey); err != nil {
		log.Warn().Err(err).Str("key", FeedbackListGenerationKey).Msg("Failed to invalidate feedback list cache")
	}
}
