package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

func TestServiceCreateOrderValidation(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(newFakeOrderRepo(), &fakeCartSetter{}, &fakeResolver{})

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{})
	if !isCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details, got %T", typed.Details())
	}
	for _, field := range []string{"user_id", "cart_id", "shipping_address", "total_price", "products"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected detail for %q, got %v", field, details)
		}
	}
}

func TestServiceCreateOrderFlipsCartToUsed(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := newFakeOrderRepo()
	carts := &fakeCartSetter{}
	resolver := &fakeResolver{products: []models.Product{{
		ID:                 productID,
		Price:              10,
		DiscountPercentage: 10,
	}}}
	svc := newTestOrderService(repo, carts, resolver)

	cartID := uuid.New()
	dto, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          uuid.New(),
		CartID:          cartID,
		ShippingAddress: "1 Main St",
		TotalPrice:      45,
		Products:        []OrderLineInput{{ProductID: productID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dto.Status != enums.OrderStatusPending.String() {
		t.Fatalf("expected Pending status, got %s", dto.Status)
	}
	if dto.TotalPrice != 45 {
		t.Fatalf("expected total 45, got %v", dto.TotalPrice)
	}
	if carts.lastCartID != cartID || carts.lastStatus != enums.CartStatusUsed {
		t.Fatalf("expected cart %s flipped to Used, got %s/%s", cartID, carts.lastCartID, carts.lastStatus)
	}
}

func TestServiceCreateOrderBumpsProductOrderCounts(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := newFakeOrderRepo()
	resolver := &fakeResolver{products: []models.Product{{
		ID:             productID,
		Price:          10,
		NumberOfOrders: 4,
	}}}
	svc := newTestOrderService(repo, &fakeCartSetter{}, resolver)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          uuid.New(),
		CartID:          uuid.New(),
		ShippingAddress: "1 Main St",
		TotalPrice:      20,
		Products:        []OrderLineInput{{ProductID: productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := resolver.orderCounts[productID]; got != 5 {
		t.Fatalf("expected order count bumped to 5, got %d", got)
	}
}

func TestServiceCreateOrderSurvivesCounterFailure(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := newFakeOrderRepo()
	resolver := &fakeResolver{
		products: []models.Product{{ID: productID, Price: 5}},
		countErr: gorm.ErrInvalidDB,
	}
	svc := newTestOrderService(repo, &fakeCartSetter{}, resolver)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          uuid.New(),
		CartID:          uuid.New(),
		ShippingAddress: "1 Main St",
		TotalPrice:      5,
		Products:        []OrderLineInput{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("counter failure must not fail order creation: %v", err)
	}
}

func TestServiceCreateOrderRecomputesDisagreeingTotal(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := newFakeOrderRepo()
	resolver := &fakeResolver{products: []models.Product{{ID: productID, Price: 10}}}
	svc := newTestOrderService(repo, &fakeCartSetter{}, resolver)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          uuid.New(),
		CartID:          uuid.New(),
		ShippingAddress: "1 Main St",
		TotalPrice:      999,
		Products:        []OrderLineInput{{ProductID: productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if repo.lastCreated.TotalPrice != 20 {
		t.Fatalf("expected stored total 20, got %v", repo.lastCreated.TotalPrice)
	}
}

func TestServiceCreateOrderSurvivesMissingCart(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	repo := newFakeOrderRepo()
	carts := &fakeCartSetter{err: gorm.ErrRecordNotFound}
	resolver := &fakeResolver{products: []models.Product{{ID: productID, Price: 5}}}
	svc := newTestOrderService(repo, carts, resolver)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID:          uuid.New(),
		CartID:          uuid.New(),
		ShippingAddress: "1 Main St",
		TotalPrice:      5,
		Products:        []OrderLineInput{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("missing cart must not fail order creation: %v", err)
	}
}

func TestServiceListOrdersNotFoundWhenEmpty(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(newFakeOrderRepo(), &fakeCartSetter{}, &fakeResolver{})

	_, err := svc.ListOrders(context.Background(), uuid.New())
	if !isCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for zero orders, got %v", err)
	}
}

func TestServiceListOrdersRecomputesTotals(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	userID := uuid.New()
	repo := newFakeOrderRepo()
	repo.orders = []models.Order{{
		ID:         uuid.New(),
		UserID:     userID,
		CartID:     uuid.New(),
		TotalPrice: 1, // stale stored value
		Status:     enums.OrderStatusPending,
		Products:   []models.OrderLineItem{{ID: uuid.New(), ProductID: productID, Quantity: 3}},
	}}
	resolver := &fakeResolver{products: []models.Product{{ID: productID, Price: 10}}}
	svc := newTestOrderService(repo, &fakeCartSetter{}, resolver)

	got, err := svc.ListOrders(context.Background(), userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one order, got %d", len(got))
	}
	if got[0].TotalPrice != 30 {
		t.Fatalf("expected recomputed total 30, got %v", got[0].TotalPrice)
	}
}

func TestServiceUpdateStatus(t *testing.T) {
	t.Parallel()

	orderID := uuid.New()
	repo := newFakeOrderRepo()
	repo.orders = []models.Order{{
		ID:     orderID,
		UserID: uuid.New(),
		Status: enums.OrderStatusDelivered,
	}}
	svc := newTestOrderService(repo, &fakeCartSetter{}, &fakeResolver{})
	ctx := context.Background()

	// backwards transition is allowed
	dto, err := svc.UpdateStatus(ctx, orderID, "Shipped")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if dto.Status != enums.OrderStatusShipped.String() {
		t.Fatalf("expected Shipped, got %s", dto.Status)
	}

	if _, err := svc.UpdateStatus(ctx, orderID, "Teleported"); !isCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, uuid.New(), "Shipped"); !isCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown order, got %v", err)
	}
}

func newTestOrderService(repo OrderRepository, carts cartStatusSetter, products productResolver) Service {
	svc, err := NewService(repo, carts, products, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		panic(err)
	}
	return svc
}

func isCode(err error, code pkgerrors.Code) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == code
}

type fakeOrderRepo struct {
	orders      []models.Order
	lastCreated *models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders = append(f.orders, *order)
	f.lastCreated = order
	return order, nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			return &f.orders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return &f.orders[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCartSetter struct {
	lastCartID uuid.UUID
	lastStatus enums.CartStatus
	err        error
}

func (f *fakeCartSetter) SetStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	if f.err != nil {
		return f.err
	}
	f.lastCartID = cartID
	f.lastStatus = status
	return nil
}

type fakeResolver struct {
	products    []models.Product
	orderCounts map[uuid.UUID]int
	countErr    error
}

func (f *fakeResolver) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Product
	for _, product := range f.products {
		if want[product.ID] {
			out = append(out, product)
		}
	}
	return out, nil
}

func (f *fakeResolver) UpdateRatingAndOrders(ctx context.Context, id uuid.UUID, numberOfOrders int) error {
	if f.countErr != nil {
		return f.countErr
	}
	if f.orderCounts == nil {
		f.orderCounts = make(map[uuid.UUID]int)
	}
	f.orderCounts[id] = numberOfOrders
	return nil
}
