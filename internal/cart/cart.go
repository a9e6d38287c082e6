// Package cart implements the cart state machine as a pure reducer:
// Reduce computes a new state from the current state and an action and
// never mutates its input. All side effects (persistence, clearing on a
// successful order) belong to callers composing the reducer with the
// order flow.
package cart

import (
	"errors"

	"github.com/storelab/storefront/internal/domain"
)

// ErrInvalidAction is returned for a nil action. The Action set itself is
// closed (only types in this package implement it), so there is no
// unknown-action branch to silently fall through.
var ErrInvalidAction = errors.New("invalid cart action")

// Action is the closed set of cart transitions.
type Action interface {
	isAction()
}

// AddItem increments the quantity of an existing line item with the same
// product id, or appends a new line item with quantity 1, snapshotting
// title, price and image from the product.
type AddItem struct {
	Product domain.Product
}

// RemoveItem deletes the line item with the given product id. No-op if absent.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the line item's quantity exactly. A quantity of zero
// or less removes the item instead; the cart never retains a zero-quantity
// line. No-op if the id is absent.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// Clear resets the cart to the empty state.
type Clear struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (Clear) isAction()          {}

// Reduce applies an action to a cart state and returns the next state.
// The input state is never modified.
func Reduce(state domain.CartState, action Action) (domain.CartState, error) {
	switch a := action.(type) {
	case AddItem:
		return addItem(state, a.Product), nil
	case RemoveItem:
		return removeItem(state, a.ProductID), nil
	case UpdateQuantity:
		if a.Quantity <= 0 {
			return removeItem(state, a.ProductID), nil
		}
		return updateQuantity(state, a.ProductID, a.Quantity), nil
	case Clear:
		return domain.CartState{}, nil
	default:
		return state, ErrInvalidAction
	}
}

func addItem(state domain.CartState, product domain.Product) domain.CartState {
	next := state.Clone()
	for i := range next.Items {
		if next.Items[i].ProductID == product.ID {
			next.Items[i].Quantity++
			return next
		}
	}
	next.Items = append(next.Items, domain.CartItem{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	})
	return next
}

func removeItem(state domain.CartState, productID string) domain.CartState {
	next := domain.CartState{}
	for _, item := range state.Items {
		if item.ProductID != productID {
			next.Items = append(next.Items, item)
		}
	}
	return next
}

func updateQuantity(state domain.CartState, productID string, quantity int) domain.CartState {
	next := state.Clone()
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity = quantity
			break
		}
	}
	return next
}
