package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storelab/storefront/internal/domain"
	"github.com/storelab/storefront/internal/payment"
	"github.com/storelab/storefront/internal/repository"
)

var (
	ErrMissingShipping       = errors.New("missing required shipping fields")
	ErrEmptyCart             = errors.New("cart is empty, nothing to order")
	ErrMissingIdempotencyKey = errors.New("missing idempotency key")

	// ErrTotalMismatch means the total the client displayed does not equal
	// the total recomputed from the submitted items. Charging a number the
	// customer never saw is worse than failing the submission.
	ErrTotalMismatch = errors.New("total amount does not match cart items")

	// ErrPaymentDeclined wraps a declined (not errored) charge.
	ErrPaymentDeclined = errors.New("payment declined")
)

type OrderService struct {
	repo      repository.OrderRepository
	processor payment.Processor
}

func NewOrderService(repo repository.OrderRepository, processor payment.Processor) *OrderService {
	return &OrderService{
		repo:      repo,
		processor: processor,
	}
}

// Submit runs the order flow: validate, deduplicate on the idempotency key,
// charge once, persist. On any failure the caller's cart is left untouched;
// there is no automatic retry, the user resubmits manually.
func (s *OrderService) Submit(ctx context.Context, req *domain.OrderRequest) (*domain.OrderConfirmation, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingShipping
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return nil, ErrMissingIdempotencyKey
	}

	total := domain.CartState{Items: req.Items}.Subtotal()
	declared := decimal.NewFromFloat(req.TotalAmount).Round(2)
	if !total.Equal(declared) {
		return nil, ErrTotalMismatch
	}

	// A resubmitted key returns the stored confirmation, no second charge.
	existing, err := s.repo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if existing != nil {
		log.Printf("Duplicate order submission, idempotency_key=%s order_id=%s", req.IdempotencyKey, existing.ID)
		return confirmation(existing.ID), nil
	}

	orderID := uuid.NewString()

	result, err := s.processor.Charge(ctx, orderID, total.StringFixed(2))
	if err != nil {
		return nil, fmt.Errorf("payment boundary failed: %w", err)
	}
	if !result.Approved {
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Reason)
	}

	order := &domain.Order{
		ID:             orderID,
		IdempotencyKey: req.IdempotencyKey,
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		Items:          req.Items,
		TotalAmount:    total.InexactFloat64(),
		TransactionID:  result.TransactionID,
		Status:         domain.OrderStatusCompleted,
	}

	if err := s.repo.Insert(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrder) {
			// Lost the race against a concurrent submission with the same
			// key; the winner's order stands.
			winner, findErr := s.repo.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if findErr != nil {
				return nil, fmt.Errorf("failed to load deduplicated order: %w", findErr)
			}
			return confirmation(winner.ID), nil
		}
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	log.Printf("Mock payment processed for total %s, order_id=%s", total.StringFixed(2), orderID)
	return confirmation(orderID), nil
}

func confirmation(orderID string) *domain.OrderConfirmation {
	return &domain.OrderConfirmation{
		OrderID: orderID,
		Message: "Order placed successfully!",
	}
}
