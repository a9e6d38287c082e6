package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelab/storefront/internal/cache"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/repository"
)

type mockProductRepo struct {
	m        sync.RWMutex
	products []domain.Product
	err      error
	inserts  int
	lists    int
}

func (m *mockProductRepo) Insert(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.inserts++
	product.ID = fmt.Sprintf("prod-%d", m.inserts)
	m.products = append(m.products, *product)
	return nil
}

func (m *mockProductRepo) List(context.Context) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.lists++
	return m.products, nil
}

type mockCatalogCache struct {
	m        sync.RWMutex
	products []domain.Product
	getErr   error
	deletes  int
}

func (m *mockCatalogCache) Get(context.Context) ([]domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCatalogCache) Set(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return nil
}

func (m *mockCatalogCache) Delete(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	m.deletes++
	return nil
}

func validInput() *domain.ProductInput {
	return &domain.ProductInput{
		Title:       "Shoe",
		Description: "Nice",
		Price:       29.99,
	}
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProductInput)
	}{
		{name: "no title", mutate: func(in *domain.ProductInput) { in.Title = "" }},
		{name: "blank title", mutate: func(in *domain.ProductInput) { in.Title = "   " }},
		{name: "no description", mutate: func(in *domain.ProductInput) { in.Description = "" }},
		{name: "no price", mutate: func(in *domain.ProductInput) { in.Price = nil }},
		{name: "empty string price", mutate: func(in *domain.ProductInput) { in.Price = "" }},
		{name: "garbage price", mutate: func(in *domain.ProductInput) { in.Price = "cheap" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProductRepo{}
			svc := NewProductService(repo, &mockCatalogCache{})

			input := validInput()
			tt.mutate(input)

			_, err := svc.Create(context.Background(), input)

			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Zero(t, repo.inserts, "nothing must be inserted")
		})
	}
}

func TestCreate_CoercesPriceAndStock(t *testing.T) {
	tests := []struct {
		name      string
		price     any
		stock     any
		wantPrice float64
		wantStock int
	}{
		{name: "numeric payload", price: 29.99, stock: 5.0, wantPrice: 29.99, wantStock: 5},
		{name: "form strings", price: "29.99", stock: "5", wantPrice: 29.99, wantStock: 5},
		{name: "stock absent defaults", price: 10.0, stock: nil, wantPrice: 10, wantStock: domain.DefaultStock},
		{name: "stock not numeric defaults", price: 10.0, stock: "lots", wantPrice: 10, wantStock: domain.DefaultStock},
		{name: "zero price is present", price: 0.0, stock: 2.0, wantPrice: 0, wantStock: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProductService(&mockProductRepo{}, &mockCatalogCache{})

			product, err := svc.Create(context.Background(), &domain.ProductInput{
				Title:       "Shoe",
				Description: "Nice",
				Price:       tt.price,
				Stock:       tt.stock,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, product.Price)
			assert.Equal(t, tt.wantStock, product.Stock)
		})
	}
}

func TestCreate_DefaultsImageWhenAbsent(t *testing.T) {
	svc := NewProductService(&mockProductRepo{}, &mockCatalogCache{})

	product, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProductImage, product.Image)
}

func TestCreate_KeepsProvidedImage(t *testing.T) {
	svc := NewProductService(&mockProductRepo{}, &mockCatalogCache{})

	input := validInput()
	input.Image = "https://example.com/shoe.png"
	product, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/shoe.png", product.Image)
}

func TestCreate_InvalidatesCatalogCache(t *testing.T) {
	catalogCache := &mockCatalogCache{products: []domain.Product{{ID: "old"}}}
	svc := NewProductService(&mockProductRepo{}, catalogCache)

	_, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, 1, catalogCache.deletes)
}

func TestCreate_PropagatesSchemaValidationError(t *testing.T) {
	repo := &mockProductRepo{err: &repository.ValidationError{Fields: []string{"Title cannot be more than 60 characters"}}}
	svc := NewProductService(repo, &mockCatalogCache{})

	_, err := svc.Create(context.Background(), validInput())

	var validationErr *repository.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Title cannot be more than 60 characters", validationErr.Error())
}

func TestList_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockProductRepo{}
	catalogCache := &mockCatalogCache{products: []domain.Product{{ID: "cached"}}}
	svc := NewProductService(repo, catalogCache)

	products, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cached", products[0].ID)
	assert.Zero(t, repo.lists)
}

func TestList_CacheMissFillsCache(t *testing.T) {
	repo := &mockProductRepo{products: []domain.Product{{ID: "p1"}, {ID: "p2"}}}
	catalogCache := &mockCatalogCache{}
	svc := NewProductService(repo, catalogCache)

	products, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 1, repo.lists)

	// Second call is served from the now-filled cache.
	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
}

func TestList_CacheErrorFallsThroughToRepository(t *testing.T) {
	repo := &mockProductRepo{products: []domain.Product{{ID: "p1"}}}
	catalogCache := &mockCatalogCache{getErr: errors.New("redis is down")}
	svc := NewProductService(repo, catalogCache)

	products, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
}
