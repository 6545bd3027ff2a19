package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/db"
	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
)

// Repository implements cart persistence on GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindActiveByUser loads the user's Active cart with its items.
func (r *Repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, enums.CartStatusActive).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindByID loads a cart by primary key with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).Preload("Items").First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a cart row.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem inserts a line item row.
func (r *Repository) AddItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveItems persists one cart merge as a unit: existing lines get their
// quantity overwritten, new lines are inserted. A failed statement rolls the
// whole merge back.
func (r *Repository) SaveItems(ctx context.Context, updates, inserts []models.CartItem) error {
	return db.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		scoped := r.WithTx(tx)
		for i := range updates {
			if err := scoped.UpdateItemQuantity(ctx, updates[i].ID, updates[i].Quantity); err != nil {
				return err
			}
		}
		for i := range inserts {
			if err := scoped.AddItem(ctx, &inserts[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateItemQuantity overwrites the quantity on one line item.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).
		Error
}

// DeleteItemsByProduct removes every line item for the product.
func (r *Repository) DeleteItemsByProduct(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).
		Error
}

// ClearItems removes every line item in the cart. The cart row stays.
func (r *Repository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).
		Error
}

// SetStatus updates the cart's status column.
func (r *Repository) SetStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).
		Error
}
