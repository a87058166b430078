package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsStable(t *testing.T) {
	params := map[string]interface{}{"page": 2, "limit": 10}

	a, err := Key(ProductListPrefix, params)
	require.NoError(t, err)
	b, err := Key(ProductListPrefix, map[string]interface{}{"limit": 10, "page": 2})
	require.NoError(t, err)
	c, err := Key(ProductListPrefix, map[string]interface{}{"page": 3, "limit": 10})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, ProductListPrefix))
	assert.Len(t, strings.TrimPrefix(a, ProductListPrefix), 32)
}

func TestKeyRejectsUnencodable(t *testing.T) {
	_, err := Key(ProductListPrefix, make(chan int))
	assert.Error(t, err)
}

func TestNopAlwaysMisses(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	var out string
	found, err := c.Get(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.DeletePrefix(ctx, ProductListPrefix))
}

func TestRedisCacheUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewRedisCache(client)

	var out string
	found, err := c.Get(context.Background(), "products:list:abc", &out)
	assert.Error(t, err)
	assert.False(t, found)

	_, err = NewRedisClient(context.Background(), &Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
