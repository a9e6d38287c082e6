package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/repository"
	"github.com/storelab/storefront/internal/service"
)

// ProductService defines what the handler needs from the catalog layer
// Consumers define this interface, not the service implementation
type ProductService interface {
	Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type ProductHandler struct {
	service ProductService
}

func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load products.")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondData(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	product, err := h.service.Create(r.Context(), &input)
	if err != nil {
		var validationErr *repository.ValidationError
		switch {
		case errors.Is(err, service.ErrMissingFields):
			respondError(w, http.StatusBadRequest, "Missing required product fields.")
		case errors.As(err, &validationErr):
			// Per-field schema messages, joined into one string.
			respondError(w, http.StatusInternalServerError, validationErr.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Internal server error while creating product.")
		}
		return
	}

	respondData(w, http.StatusCreated, product)
}
