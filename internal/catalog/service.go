package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/internal/pricing"
	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/types"
)

// FacetScopeAll selects facets across every category.
const FacetScopeAll = "all"

// Service exposes catalog read and write operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, filters ListFilters) (*ProductListResult, error)
	GetFacets(ctx context.Context, category string) (*FacetsDTO, error)
}

// ProductStore is the persistence surface the service depends on.
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, int64, error)
	Facets(ctx context.Context, category string) (*FacetsDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Title              string
	Description        string
	Category           string
	Brand              string
	Color              string
	Material           string
	Size               string
	Price              float64
	DiscountPercentage float64
	Stock              int
	Rating             float64
	NumberOfOrders     int
	Shipping           *types.ShippingInfo
	Images             []string
	IsFavorite         bool
}

type service struct {
	repo ProductStore
}

// NewService constructs a catalog service instance.
func NewService(repo ProductStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates and persists a new catalog listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category").
			WithDetails(map[string]string{"category": input.Category})
	}

	product := &models.Product{
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Category:           category,
		Brand:              input.Brand,
		Color:              input.Color,
		Material:           input.Material,
		Size:               input.Size,
		Price:              input.Price,
		DiscountPercentage: input.DiscountPercentage,
		Stock:              input.Stock,
		Rating:             input.Rating,
		NumberOfOrders:     input.NumberOfOrders,
		Shipping:           input.Shipping,
		Images:             pq.StringArray(input.Images),
		IsFavorite:         input.IsFavorite,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}

	dto := NewProductDTO(created, pricing.DiscountedUnitPrice(created.Price, created.DiscountPercentage))
	return &dto, nil
}

// GetProduct loads a single product by ID.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	dto := NewProductDTO(product, pricing.DiscountedUnitPrice(product.Price, product.DiscountPercentage))
	return &dto, nil
}

// ListProducts applies the filters and returns one page plus the total count.
func (s *service) ListProducts(ctx context.Context, filters ListFilters) (*ProductListResult, error) {
	// Unknown sort keys fall back to storage order rather than erroring.
	switch filters.Sort {
	case "", SortBestRated, SortLatest:
	default:
		filters.Sort = ""
	}

	products, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	result := &ProductListResult{
		TotalCount: total,
		Products:   make([]ProductDTO, 0, len(products)),
	}
	for i := range products {
		product := &products[i]
		result.Products = append(result.Products, NewProductDTO(product, pricing.DiscountedUnitPrice(product.Price, product.DiscountPercentage)))
	}
	return result, nil
}

// GetFacets returns the distinct filter values within the category scope.
func (s *service) GetFacets(ctx context.Context, category string) (*FacetsDTO, error) {
	scope := strings.TrimSpace(category)
	if scope == "" || strings.EqualFold(scope, FacetScopeAll) {
		scope = ""
	} else if _, err := enums.ParseProductCategory(scope); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category").
			WithDetails(map[string]string{"category": category})
	}

	facets, err := s.repo.Facets(ctx, scope)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load facets")
	}
	return facets, nil
}

func validateCreateInput(input CreateProductInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(input.Description) == "" {
		details["description"] = "required"
	}
	if input.Price <= 0 {
		details["price"] = "must be greater than zero"
	}
	if input.Stock <= 0 {
		details["stock"] = "must be greater than zero"
	}
	if input.DiscountPercentage < 0 || input.DiscountPercentage > 100 {
		details["discount_percentage"] = "must be between 0 and 100"
	}
	if input.Rating < 0 || input.Rating > 5 {
		details["rating"] = "must be between 0 and 5"
	}
	if len(input.Images) == 0 {
		details["images"] = "at least one image is required"
	}
	if input.Shipping != nil && input.Shipping.Cost < 0 {
		details["shipping.cost"] = "must not be negative"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product payload").WithDetails(details)
	}
	return nil
}
