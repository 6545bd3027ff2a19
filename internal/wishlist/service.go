package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/internal/catalog"
	"github.com/evermart/evermart-backend/internal/pricing"
	"github.com/evermart/evermart-backend/pkg/db/models"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
)

// Service exposes the wishlist toggle and read operations.
type Service interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResult, error)
	GetWishlist(ctx context.Context, userID uuid.UUID) ([]catalog.ProductDTO, error)
}

// WishlistStore is the persistence surface the service depends on.
type WishlistStore interface {
	ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type userChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// ToggleResult reports the membership outcome and the resulting list.
type ToggleResult struct {
	Added      bool        `json:"added"`
	ProductIDs []uuid.UUID `json:"wishlist"`
}

type service struct {
	repo     WishlistStore
	users    userChecker
	products productLoader
}

// NewService constructs a wishlist service instance.
func NewService(repo WishlistStore, users userChecker, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, users: users, products: products}, nil
}

// Toggle flips the product's membership on the user's wishlist and returns
// the resulting product-id list. Toggling twice restores the original state.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (*ToggleResult, error) {
	if userID == uuid.Nil || productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and product id are required")
	}

	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	present, err := s.repo.Contains(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check wishlist")
	}
	if present {
		if err := s.repo.Remove(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: remove wishlist item")
		}
	} else {
		if err := s.repo.Add(ctx, userID, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: add wishlist item")
		}
	}

	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list wishlist")
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return &ToggleResult{Added: !present, ProductIDs: ids}, nil
}

// GetWishlist returns the user's wishlist with resolved products. An empty
// list is a valid result.
func (s *service) GetWishlist(ctx context.Context, userID uuid.UUID) ([]catalog.ProductDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.repo.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list wishlist")
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve wishlist products")
	}

	out := make([]catalog.ProductDTO, 0, len(products))
	for i := range products {
		product := &products[i]
		out = append(out, catalog.NewProductDTO(product, pricing.DiscountedUnitPrice(product.Price, product.DiscountPercentage)))
	}
	return out, nil
}

func (s *service) ensureUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return nil
}
