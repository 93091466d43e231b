package repositories

import (
	"context"
	"easy-shop/models"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const productListKey = "products_list"

// cachedProduct keeps the image public id, which models.Product hides from JSON.
type cachedProduct struct {
	models.Product
	ImagePublicID string `json:"image_public_id"`
}

type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *ProductCache) GetList(ctx context.Context) ([]models.Product, error) {
	data, err := c.client.Get(ctx, productListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var entries []cachedProduct
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err)
	}

	products := make([]models.Product, 0, len(entries))
	for _, e := range entries {
		p := e.Product
		p.ImagePublicID = e.ImagePublicID
		products = append(products, p)
	}
	return products, nil
}

func (c *ProductCache) SetList(ctx context.Context, products []models.Product) error {
	entries := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		entries = append(entries, cachedProduct{Product: p, ImagePublicID: p.ImagePublicID})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}
	if err := c.client.Set(ctx, productListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
