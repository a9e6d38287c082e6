package domain

import "time"

// DefaultProductImage is used when an admin submits a product without an image URL.
const DefaultProductImage = "https://placehold.co/400x400/6b7280/ffffff?text=New+Product"

// DefaultStock is applied when the stock field is absent or not numeric.
const DefaultStock = 1

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image" json:"image"`
	Stock       int       `bson:"stock" json:"stock"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// ProductInput is the raw admin payload. Price and Stock are untyped because
// the admin form posts them as strings while API clients post numbers; the
// service coerces both.
type ProductInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       any    `json:"price"`
	Image       string `json:"image"`
	Stock       any    `json:"stock"`
}
