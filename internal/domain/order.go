package domain

import "time"

// OrderRequest is the checkout payload: shipping details, the cart snapshot,
// the total the client displayed, and a caller-generated idempotency key so
// a resubmitted request cannot create a second order.
type OrderRequest struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Address        string     `json:"address"`
	Items          []CartItem `json:"items"`
	TotalAmount    float64    `json:"totalAmount"`
	IdempotencyKey string     `json:"idempotencyKey"`
}

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Order is the persisted record of a successful submission.
type Order struct {
	ID             string      `bson:"_id,omitempty"`
	IdempotencyKey string      `bson:"idempotency_key"`
	Name           string      `bson:"name"`
	Email          string      `bson:"email"`
	Address        string      `bson:"address"`
	Items          []CartItem  `bson:"items"`
	TotalAmount    float64     `bson:"total_amount"`
	TransactionID  string      `bson:"transaction_id"`
	Status         OrderStatus `bson:"status"`
	CreatedAt      time.Time   `bson:"created_at"`
}

// OrderConfirmation is returned to the caller after a successful (or
// deduplicated) submission.
type OrderConfirmation struct {
	OrderID string
	Message string
}
