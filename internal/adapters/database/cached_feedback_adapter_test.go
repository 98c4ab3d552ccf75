package database_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/feedbacker/internal/adapters/database"
	"github.com/zatekoja/feedbacker/internal/domain/entities"
	"github.com/zatekoja/feedbacker/internal/domain/providers"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]int
	failSet bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	if c.failSet {
		return errors.New("redis down")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = expirationSeconds
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if raw, ok := c.entries[key]; ok {
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	c.entries[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type countingRepo struct {
	mu        sync.Mutex
	items     []*entities.Feedback
	listCalls int
	listErr   error

	// listHook runs after the snapshot is taken, outside the lock.
	listHook func()
}

func (r *countingRepo) Create(ctx context.Context, f *entities.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = "id-" + f.Message
	}
	r.items = append([]*entities.Feedback{f}, r.items...)
	return nil
}

func (r *countingRepo) ListByRecency(ctx context.Context) ([]*entities.Feedback, error) {
	r.mu.Lock()
	r.listCalls++
	if r.listErr != nil {
		r.mu.Unlock()
		return nil, r.listErr
	}
	out := make([]*entities.Feedback, len(r.items))
	copy(out, r.items)
	hook := r.listHook
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *countingRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.items {
		if f.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestCachedFeedbackAdapter_ServesSecondListFromCache(t *testing.T) {
	repo := &countingRepo{}
	cache := newMapCache()
	adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, adapter.Create(ctx, &entities.Feedback{Message: "hi", CreatedAt: now, UpdatedAt: now}))

	first, err := adapter.ListByRecency(ctx)
	require.NoError(t, err)
	second, err := adapter.ListByRecency(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 30, cache.ttls[database.FeedbackListKey(1)])
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.True(t, first[0].CreatedAt.Equal(second[0].CreatedAt))
}

func TestCachedFeedbackAdapter_WritesInvalidate(t *testing.T) {
	repo := &countingRepo{}
	cache := newMapCache()
	adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)
	ctx := context.Background()

	_, err := adapter.ListByRecency(ctx)
	require.NoError(t, err)
	assert.True(t, cache.has(database.FeedbackListKey(0)))

	require.NoError(t, adapter.Create(ctx, &entities.Feedback{Message: "a"}))
	assert.Equal(t, "1", string(cache.entries[database.FeedbackListGenerationKey]))

	list, err := adapter.ListByRecency(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	existed, err := adapter.DeleteByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.True(t, existed)

	list, err = adapter.ListByRecency(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 3, repo.listCalls)
}

func TestCachedFeedbackAdapter_EmptyCachedListIsNotNil(t *testing.T) {
	cache := newMapCache()
	cache.entries[database.FeedbackListKey(0)] = []byte("null")
	adapter := database.NewCachedFeedbackAdapter(&countingRepo{}, cache, 30, nil)

	list, err := adapter.ListByRecency(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestCachedFeedbackAdapter_CacheFailuresDoNotFailReads(t *testing.T) {
	repo := &countingRepo{}
	cache := newMapCache()
	cache.failSet = true
	cache.entries[database.FeedbackListKey(0)] = []byte("{corrupt")
	adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)

	list, err := adapter.ListByRecency(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCachedFeedbackAdapter_StoreErrorsPropagate(t *testing.T) {
	repo := &countingRepo{listErr: errors.New("unreachable")}
	adapter := database.NewCachedFeedbackAdapter(repo, newMapCache(), 30, nil)

	_, err := adapter.ListByRecency(context.Background())
	assert.Error(t, err)
}

func TestCachedFeedbackAdapter_ListOverlappingWriteIsNotServedAfterIt(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		repo := &countingRepo{}
		cache := newMapCache()
		adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)

		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		repo.listHook = func() {
			once.Do(func() {
				close(entered)
				<-release
			})
		}

		done := make(chan []*entities.Feedback)
		go func() {
			list, err := adapter.ListByRecency(ctx)
			assert.NoError(t, err)
			done <- list
		}()

		<-entered
		require.NoError(t, adapter.Create(ctx, &entities.Feedback{Message: "late"}))
		close(release)
		assert.Empty(t, <-done)

		list, err := adapter.ListByRecency(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "late", list[0].Message)
	})

	t.Run("delete", func(t *testing.T) {
		repo := &countingRepo{items: []*entities.Feedback{{ID: "gone", Message: "gone"}}}
		cache := newMapCache()
		adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)

		entered := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		repo.listHook = func() {
			once.Do(func() {
				close(entered)
				<-release
			})
		}

		done := make(chan []*entities.Feedback)
		go func() {
			list, err := adapter.ListByRecency(ctx)
			assert.NoError(t, err)
			done <- list
		}()

		<-entered
		existed, err := adapter.DeleteByID(ctx, "gone")
		require.NoError(t, err)
		require.True(t, existed)
		close(release)
		assert.Len(t, <-done, 1)

		list, err := adapter.ListByRecency(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestCachedFeedbackAdapter_UnreadableGenerationBypassesCache(t *testing.T) {
	repo := &countingRepo{}
	cache := newMapCache()
	cache.entries[database.FeedbackListGenerationKey] = []byte("not-a-number")
	adapter := database.NewCachedFeedbackAdapter(repo, cache, 30, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := adapter.ListByRecency(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, repo.listCalls)
}
