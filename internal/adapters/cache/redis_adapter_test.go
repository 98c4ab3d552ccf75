package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	redisclient "github.com/zatekoja/feedbacker/internal/infrastructure/clients/redis"
)

func TestRedisAdapter_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	adapter := NewRedisAdapter(redisclient.NewClientFromRedis(rdb))
	ctx := context.Background()

	_, err := adapter.Get(ctx, "feedback:list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get feedback:list from cache")

	assert.Error(t, adapter.Set(ctx, "feedback:list", []byte("[]"), 30))
	assert.Error(t, adapter.Delete(ctx, "feedback:list"))

	_, err = adapter.Incr(ctx, "feedback:list:gen")
	assert.ErrorContains(t, err, "failed to increment feedback:list:gen in cache")
}
