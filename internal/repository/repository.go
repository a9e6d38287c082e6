package repository

import (
	"context"

	"github.com/storelab/storefront/internal/domain"
)

// ProductRepository defines the interface for product data operations
// Consumers define this interface, not the MongoDB implementation
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	List(ctx context.Context) ([]domain.Product, error)
}

// OrderRepository persists completed orders keyed by idempotency key.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
}

// IndexCreator is implemented by repositories that maintain their own indexes;
// main runs it once at startup.
type IndexCreator interface {
	CreateIndexes(ctx context.Context) error
}
