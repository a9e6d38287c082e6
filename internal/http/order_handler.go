package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/storelab/storefront/internal/cart"
	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/service"
	"github.com/storelab/storefront/internal/session"
)

type OrderService interface {
	Submit(ctx context.Context, req *domain.OrderRequest) (*domain.OrderConfirmation, error)
}

type OrderHandler struct {
	service  OrderService
	sessions *session.Store
}

func NewOrderHandler(service OrderService, sessions *session.Store) *OrderHandler {
	return &OrderHandler{
		service:  service,
		sessions: sessions,
	}
}

// Create submits an order. The session cart is cleared only after the
// boundary reports success; on any failure the cart is left exactly as it
// was so the user can resubmit.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())

	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	// One submission at a time per session. The in-flight flag engages
	// before any boundary work, so a double-click cannot charge twice.
	if err := h.sessions.BeginCheckout(sessionID); err != nil {
		respondError(w, http.StatusConflict, "An order submission is already in progress.")
		return
	}
	defer h.sessions.EndCheckout(sessionID)

	conf, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingShipping),
			errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrMissingIdempotencyKey),
			errors.Is(err, service.ErrTotalMismatch):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("order submission failed, request_id=%s: %v", requestIDFromContext(r.Context()), err)
			respondError(w, http.StatusInternalServerError, "Failed to place order.")
		}
		return
	}

	if _, err := h.sessions.Dispatch(sessionID, cart.Clear{}); err != nil {
		log.Printf("failed to clear cart after order %s: %v", conf.OrderID, err)
	}

	respondJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: conf.Message,
		OrderID: conf.OrderID,
	})
}
