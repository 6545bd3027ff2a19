package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
)

// CartRepository is the persistence surface the service depends on.
type CartRepository interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	SaveItems(ctx context.Context, updates, inserts []models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItemsByProduct(ctx context.Context, cartID, productID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error
	SetStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error
}

// ProductResolver loads product rows for cart reads.
type ProductResolver interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}
