package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/session"
)

type CartHandler struct {
	sessions *session.Store
}

func NewCartHandler(sessions *session.Store) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// cartView is the cart plus its derived values, matching what the cart and
// checkout pages display.
type cartView struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  float64           `json:"subtotal"`
}

func viewOf(state domain.CartState) cartView {
	items := state.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	subtotal, _ := state.Subtotal().Float64()
	return cartView{
		Items:     items,
		ItemCount: state.ItemCount(),
		Subtotal:  subtotal,
	}
}

type addItemRequestDTO struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type updateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	state := h.sessions.Get(sessionIDFromContext(r.Context()))
	respondData(w, http.StatusOK, viewOf(state))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		respondError(w, http.StatusBadRequest, "Product id is required.")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "Price cannot be negative.")
		return
	}

	state, err := h.sessions.Dispatch(sessionIDFromContext(r.Context()), cart.AddItem{
		Product: domain.Product{
			ID:    req.ID,
			Title: req.Title,
			Price: req.Price,
			Image: req.Image,
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update cart.")
		return
	}

	respondData(w, http.StatusCreated, viewOf(state))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "Product id is required.")
		return
	}

	var req updateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	// Zero or negative quantity removes the line item; the reducer owns
	// that rule, so no bound check here.
	state, err := h.sessions.Dispatch(sessionIDFromContext(r.Context()), cart.UpdateQuantity{
		ProductID: productID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update cart.")
		return
	}

	respondData(w, http.StatusOK, viewOf(state))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "Product id is required.")
		return
	}

	state, err := h.sessions.Dispatch(sessionIDFromContext(r.Context()), cart.RemoveItem{
		ProductID: productID,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update cart.")
		return
	}

	respondData(w, http.StatusOK, viewOf(state))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Dispatch(sessionIDFromContext(r.Context()), cart.Clear{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear cart.")
		return
	}

	respondData(w, http.StatusOK, viewOf(state))
}
