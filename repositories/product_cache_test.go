package repositories

import (
	"context"
	"easy-shop/models"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewProductCache(client), mr
}

func TestProductCache_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	products, err := cache.GetList(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, products)
}

func TestProductCache_RoundTripKeepsPublicID(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	in := []models.Product{{
		ID:            "p1",
		Name:          "Mug",
		Price:         decimal.RequireFromString("12.50"),
		Image:         "https://cdn.example.com/mug",
		ImagePublicID: "products/mug",
	}}

	require.NoError(t, cache.SetList(ctx, in))
	assert.True(t, mr.Exists(productListKey))
	assert.Equal(t, 5*time.Minute, mr.TTL(productListKey))

	out, err := cache.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Mug", out[0].Name)
	assert.Equal(t, "products/mug", out[0].ImagePublicID)
	assert.True(t, in[0].Price.Equal(out[0].Price))
}

func TestProductCache_Expires(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.SetList(ctx, []models.Product{{ID: "p1"}}))
	mr.FastForward(6 * time.Minute)

	_, err := cache.GetList(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_Invalidate(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.SetList(ctx, []models.Product{{ID: "p1"}}))
	require.NoError(t, cache.Invalidate(ctx))

	assert.False(t, mr.Exists(productListKey))
	_, err := cache.GetList(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(productListKey, "not json"))

	_, err := cache.GetList(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_RedisDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.GetList(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
