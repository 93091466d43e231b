package services

import (
	"context"
	"easy-shop/models"
	"easy-shop/repositories"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const catalogFlightKey = "products"

// CatalogService is read access to the product collection. The list is
// served from cache when one is configured; cache failures fall back to the
// store.
type CatalogService struct {
	products ProductStore
	cache    ProductCache
	timeout  time.Duration
	logger   *zap.Logger
	sfg      singleflight.Group

	// generation is bumped by every Invalidate; a list read under an older
	// generation is never written back to the cache.
	cacheMu    sync.Mutex
	generation uint64
}

func NewCatalogService(products ProductStore, cache ProductCache, timeout time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		cache:    cache,
		timeout:  timeout,
		logger:   logger,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	v, err, _ := s.sfg.Do(catalogFlightKey, func() (interface{}, error) {
		// Shared by every caller joined to this flight, so it must outlive the
		// caller that happened to start it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		if s.cache != nil {
			products, err := s.cache.GetList(fetchCtx)
			if err == nil {
				return products, nil
			}
			if !errors.Is(err, repositories.ErrCacheMiss) {
				s.logger.Warn("product cache get failed", zap.Error(err))
			}
		}

		generation := s.currentGeneration()

		products, err := s.products.List(fetchCtx)
		if err != nil {
			return nil, storeErr("list products", err)
		}

		if s.cache != nil {
			s.fill(generation, products)
		}

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]models.Product), nil
}

func (s *CatalogService) currentGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// fill caches products read under generation, unless a write invalidated
// the catalog since.
func (s *CatalogService) fill(generation uint64, products []models.Product) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	if generation != s.generation {
		s.logger.Debug("skipping stale product cache fill")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.SetList(ctx, products); err != nil {
		s.logger.Warn("product cache set failed", zap.Error(err))
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get product", err)
	}
	return product, nil
}

// Invalidate drops the cached list after any catalog write. Lists already
// in flight are not joined by later callers.
func (s *CatalogService) Invalidate() {
	s.cacheMu.Lock()
	s.generation++
	if s.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("product cache invalidate failed", zap.Error(err))
		}
		cancel()
	}
	s.cacheMu.Unlock()

	s.sfg.Forget(catalogFlightKey)
}
