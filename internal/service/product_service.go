package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/storelab/storefront/internal/cache"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/repository"
)

// ErrMissingFields is the combined presence check: title, price and
// description must all be supplied. Per-field messages come from the
// repository's schema pass, not from here.
var ErrMissingFields = errors.New("missing required product fields")

type ProductService struct {
	repo  repository.ProductRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede on the listing
}

func NewProductService(repo repository.ProductRepository, cache cache.CatalogCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: cache,
	}
}

// Create validates and inserts one product. Coercion is deliberately
// permissive: price accepts a number or a numeric string (the admin form
// posts strings), and a stock value that is absent or not numeric silently
// defaults rather than rejecting the request.
func (s *ProductService) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	price, priceOK := coerceFloat(input.Price)
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" || !priceOK {
		return nil, ErrMissingFields
	}

	image := input.Image
	if strings.TrimSpace(image) == "" {
		image = domain.DefaultProductImage
	}

	stock, stockOK := coerceInt(input.Stock)
	if !stockOK {
		stock = domain.DefaultStock
	}

	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Image:       image,
		Stock:       stock,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	log.Printf("New product added: %s (ID: %s)", product.Title, product.ID)

	return product, nil
}

// List serves the catalog from cache when possible. Cache failures are
// logged and bypassed; the repository stays the source of truth.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("catalog", func() (interface{}, error) {
		products, errGet := s.cache.Get(ctx)
		if errGet == nil {
			return products, nil
		}
		if !errors.Is(errGet, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", errGet)
		}

		products, errList := s.repo.List(ctx)
		if errList != nil {
			return nil, errList
		}

		setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if errSet := s.cache.Set(setCtx, products); errSet != nil {
			log.Printf("cache set error: %v", errSet)
		}

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *ProductService) invalidateCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

// coerceFloat accepts JSON numbers and numeric strings. Empty or
// unparseable values report !ok.
func coerceFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceInt(v any) (int, bool) {
	switch value := v.(type) {
	case float64:
		return int(value), true
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		i, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
