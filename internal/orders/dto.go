package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/internal/catalog"
)

// OrderLineInput is one (product, quantity) pair submitted with an order.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput holds the payload to place an order.
type CreateOrderInput struct {
	UserID          uuid.UUID
	CartID          uuid.UUID
	ShippingAddress string
	TotalPrice      float64
	Products        []OrderLineInput
}

// OrderLineDTO is an order position with its resolved product, when the
// catalog row still exists.
type OrderLineDTO struct {
	ProductID uuid.UUID           `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Product   *catalog.ProductDTO `json:"product,omitempty"`
}

// OrderDTO is the order payload returned to clients. TotalPrice is the
// recomputed value, not the stored column.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	CartID          uuid.UUID      `json:"cart_id"`
	ShippingAddress string         `json:"shipping_address"`
	TotalPrice      float64        `json:"total_price"`
	Status          string         `json:"status"`
	Products        []OrderLineDTO `json:"products"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
