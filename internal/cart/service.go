package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/internal/catalog"
	"github.com/evermart/evermart-backend/internal/pricing"
	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
)

// Service exposes the per-user cart operations.
type Service interface {
	AddItems(ctx context.Context, userID uuid.UUID, items []ItemInput) error
	GetItems(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error
	ReduceQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo     CartRepository
	products ProductResolver
}

// NewService constructs a cart service instance.
func NewService(repo CartRepository, products ProductResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItems merges the submitted items into the user's Active cart, creating
// the cart on first use. Quantities for already-present products are
// incremented rather than duplicated, and the merged rows are written as one
// unit so a mid-write failure leaves the cart untouched.
//
// The read-modify-write is not serialized; two interleaved calls on the same
// cart can lose one increment.
func (s *service) AddItems(ctx context.Context, userID uuid.UUID, items []ItemInput) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "items must not be empty")
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product id is required").
				WithDetails(map[string]int{"index": i})
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").
				WithDetails(map[string]int{"index": i})
		}
	}

	current, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
		}
		current, err = s.repo.Create(ctx, &models.Cart{UserID: userID, Status: enums.CartStatusActive})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create cart")
		}
	}

	// the request may repeat a product; fold duplicates before merging
	requested := make(map[uuid.UUID]int, len(items))
	sequence := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := requested[item.ProductID]; !ok {
			sequence = append(sequence, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	existing := make(map[uuid.UUID]*models.CartItem, len(current.Items))
	for i := range current.Items {
		existing[current.Items[i].ProductID] = &current.Items[i]
	}

	var updates, inserts []models.CartItem
	for _, productID := range sequence {
		if line, ok := existing[productID]; ok {
			line.Quantity += requested[productID]
			updates = append(updates, *line)
			continue
		}
		inserts = append(inserts, models.CartItem{
			ID:        uuid.New(),
			CartID:    current.ID,
			ProductID: productID,
			Quantity:  requested[productID],
		})
	}

	if err := s.repo.SaveItems(ctx, updates, inserts); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart items")
	}
	return nil
}

// GetItems returns the cart with resolved products and both totals.
func (s *service) GetItems(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	current, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	ids := make([]uuid.UUID, 0, len(current.Items))
	for _, item := range current.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	dto := &CartDTO{
		ID:    current.ID,
		Items: make([]CartItemDTO, 0, len(current.Items)),
	}
	lines := make([]pricing.Line, 0, len(current.Items))
	for _, item := range current.Items {
		entry := CartItemDTO{ProductID: item.ProductID, Quantity: item.Quantity}
		if product, ok := byID[item.ProductID]; ok {
			productDTO := catalog.NewProductDTO(product, pricing.DiscountedUnitPrice(product.Price, product.DiscountPercentage))
			entry.Product = &productDTO
			lines = append(lines, pricing.Line{
				UnitPrice:          product.Price,
				DiscountPercentage: product.DiscountPercentage,
				Quantity:           item.Quantity,
			})
		}
		dto.Items = append(dto.Items, entry)
	}

	totals := pricing.CartTotals(lines)
	dto.TotalPriceBeforeDiscount = totals.BeforeDiscount
	dto.TotalPriceAfterDiscount = totals.AfterDiscount
	return dto, nil
}

// RemoveProduct deletes every line item for the product. Removing a product
// that is not in the cart succeeds without change.
func (s *service) RemoveProduct(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and product id are required")
	}

	current, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteItemsByProduct(ctx, current.ID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart items")
	}
	return nil
}

// ReduceQuantity decrements a line item's quantity, refusing to drop it
// below one.
func (s *service) ReduceQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id and product id are required")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	current, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}

	var line *models.CartItem
	for i := range current.Items {
		if current.Items[i].ProductID == productID {
			line = &current.Items[i]
			break
		}
	}
	if line == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in cart")
	}

	if line.Quantity-quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "quantity cannot be reduced below 1")
	}
	if err := s.repo.UpdateItemQuantity(ctx, line.ID, line.Quantity-quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	return nil
}

// Clear empties the cart. The cart row itself survives, so a follow-up read
// returns an empty cart rather than NotFound.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	current, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.ClearItems(ctx, current.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return nil
}

func (s *service) loadCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	current, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}
	return current, nil
}
