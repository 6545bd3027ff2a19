package orders

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/internal/catalog"
	"github.com/evermart/evermart-backend/internal/pricing"
	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

// Service exposes order placement and read operations.
type Service interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error)
}

// OrderRepository is the persistence surface the service depends on.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type cartStatusSetter interface {
	SetStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error
}

type productResolver interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	UpdateRatingAndOrders(ctx context.Context, id uuid.UUID, numberOfOrders int) error
}

type service struct {
	repo     OrderRepository
	carts    cartStatusSetter
	products productResolver
	logg     *logger.Logger
}

// NewService constructs an order service instance.
func NewService(repo OrderRepository, carts cartStatusSetter, products productResolver, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart status setter required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, carts: carts, products: products, logg: logg}, nil
}

// ListOrders returns the user's orders with totals recomputed from current
// catalog prices. Zero orders is NotFound, matching the read contract.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	if len(rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "orders not found")
	}

	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, order := range rows {
		for _, line := range order.Products {
			if !seen[line.ProductID] {
				seen[line.ProductID] = true
				ids = append(ids, line.ProductID)
			}
		}
	}
	byID, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, s.buildDTO(&rows[i], byID))
	}
	return out, nil
}

// CreateOrder validates the payload, snapshots the line items with status
// Pending, and best-effort retires the referenced cart to Used and bumps each
// product's denormalized order counter. The stored
// total is the server-side recomputation whenever the client value
// disagrees with the calculator.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if err := validateCreateOrder(input); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Products))
	for _, line := range input.Products {
		ids = append(ids, line.ProductID)
	}
	byID, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, 0, len(input.Products))
	for _, line := range input.Products {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, pricing.Line{
			UnitPrice:          product.Price,
			DiscountPercentage: product.DiscountPercentage,
			Quantity:           line.Quantity,
		})
	}
	total := input.TotalPrice
	if recomputed := pricing.OrderTotal(lines); math.Abs(recomputed-input.TotalPrice) > 1e-9 {
		s.logg.Warn(ctx, fmt.Sprintf("client total %.2f disagrees with recomputed %.2f, storing recomputed", input.TotalPrice, recomputed))
		total = recomputed
	}

	order := &models.Order{
		UserID:          input.UserID,
		CartID:          input.CartID,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		TotalPrice:      total,
		Status:          enums.OrderStatusPending,
	}
	for _, line := range input.Products {
		order.Products = append(order.Products, models.OrderLineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
	}

	// best effort, a missing cart must not fail the order
	if err := s.carts.SetStatus(ctx, input.CartID, enums.CartStatusUsed); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("failed to retire cart %s: %v", input.CartID, err))
	}

	// denormalized per-product order counters, same best-effort contract
	for _, line := range created.Products {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		if err := s.products.UpdateRatingAndOrders(ctx, product.ID, product.NumberOfOrders+1); err != nil {
			s.logg.Warn(ctx, fmt.Sprintf("failed to bump order count for product %s: %v", product.ID, err))
		}
	}

	dto := s.buildDTO(created, byID)
	return &dto, nil
}

// UpdateStatus overwrites the order's status. Any transition between valid
// statuses is allowed, including backwards moves.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status value").
			WithDetails(map[string]string{"status": status})
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}

	ids := make([]uuid.UUID, 0, len(updated.Products))
	for _, line := range updated.Products {
		ids = append(ids, line.ProductID)
	}
	byID, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	dto := s.buildDTO(updated, byID)
	return &dto, nil
}

func (s *service) resolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve order products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (s *service) buildDTO(order *models.Order, byID map[uuid.UUID]*models.Product) OrderDTO {
	dto := OrderDTO{
		ID:              order.ID,
		UserID:          order.UserID,
		CartID:          order.CartID,
		ShippingAddress: order.ShippingAddress,
		Status:          order.Status.String(),
		Products:        make([]OrderLineDTO, 0, len(order.Products)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	lines := make([]pricing.Line, 0, len(order.Products))
	for _, line := range order.Products {
		entry := OrderLineDTO{ProductID: line.ProductID, Quantity: line.Quantity}
		if product, ok := byID[line.ProductID]; ok {
			productDTO := catalog.NewProductDTO(product, pricing.DiscountedUnitPrice(product.Price, product.DiscountPercentage))
			entry.Product = &productDTO
			lines = append(lines, pricing.Line{
				UnitPrice:          product.Price,
				DiscountPercentage: product.DiscountPercentage,
				Quantity:           line.Quantity,
			})
		}
		dto.Products = append(dto.Products, entry)
	}
	dto.TotalPrice = pricing.OrderTotal(lines)
	return dto
}

func validateCreateOrder(input CreateOrderInput) error {
	details := map[string]string{}
	if input.UserID == uuid.Nil {
		details["user_id"] = "required"
	}
	if input.CartID == uuid.Nil {
		details["cart_id"] = "required"
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		details["shipping_address"] = "required"
	}
	if input.TotalPrice <= 0 {
		details["total_price"] = "must be greater than zero"
	}
	if len(input.Products) == 0 {
		details["products"] = "must not be empty"
	}
	for i, line := range input.Products {
		if line.ProductID == uuid.Nil || line.Quantity < 1 {
			details["products"] = fmt.Sprintf("invalid line at index %d", i)
			break
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order payload").WithDetails(details)
	}
	return nil
}
