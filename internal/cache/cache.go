package cache

import (
	"context"
	"errors"

	"github.com/storelab/storefront/internal/domain"
)

// CatalogCache sits in front of the product listing. Implementations may
// fail; callers treat any error other than ErrCacheMiss as a degraded cache
// and fall through to the repository.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
