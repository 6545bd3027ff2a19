package cart

import (
	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/internal/catalog"
)

// ItemInput is one (product, quantity) pair submitted by a client.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartItemDTO is a cart line with its resolved product. Product is nil when
// the catalog row has been deleted since the item was added.
type CartItemDTO struct {
	ProductID uuid.UUID           `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Product   *catalog.ProductDTO `json:"product,omitempty"`
}

// CartDTO is the cart read payload with both totals.
type CartDTO struct {
	ID                       uuid.UUID     `json:"id"`
	Items                    []CartItemDTO `json:"items"`
	TotalPriceBeforeDiscount float64       `json:"total_price_before_discount"`
	TotalPriceAfterDiscount  float64       `json:"total_price_after_discount"`
}
