package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/db/models"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
)

func TestServiceToggleRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	store := newFakeWishlistStore()
	svc := newTestWishlistService(store, userID, []models.Product{{ID: productID, Price: 10}})
	ctx := context.Background()

	first, err := svc.Toggle(ctx, userID, productID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !first.Added || len(first.ProductIDs) != 1 {
		t.Fatalf("expected product added, got %+v", first)
	}

	second, err := svc.Toggle(ctx, userID, productID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if second.Added || len(second.ProductIDs) != 0 {
		t.Fatalf("expected product removed on second toggle, got %+v", second)
	}
}

func TestServiceToggleUnknownUserOrProduct(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	svc := newTestWishlistService(newFakeWishlistStore(), userID, []models.Product{{ID: productID}})
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, uuid.New(), productID); !isCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if _, err := svc.Toggle(ctx, userID, uuid.New()); !isCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
	if _, err := svc.Toggle(ctx, uuid.Nil, productID); !isCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for nil user, got %v", err)
	}
}

func TestServiceGetWishlistResolvesProducts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	store := newFakeWishlistStore()
	svc := newTestWishlistService(store, userID, []models.Product{{
		ID:                 productID,
		Title:              "Camera",
		Price:              100,
		DiscountPercentage: 25,
	}})
	ctx := context.Background()

	got, err := svc.GetWishlist(ctx, userID)
	if err != nil {
		t.Fatalf("empty wishlist should succeed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty wishlist, got %d", len(got))
	}

	if _, err := svc.Toggle(ctx, userID, productID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	got, err = svc.GetWishlist(ctx, userID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Camera" {
		t.Fatalf("expected resolved camera, got %+v", got)
	}
	if got[0].DiscountedPrice != 75 {
		t.Fatalf("expected discounted price 75, got %v", got[0].DiscountedPrice)
	}
}

func newTestWishlistService(store WishlistStore, userID uuid.UUID, products []models.Product) Service {
	svc, err := NewService(store, &fakeUserChecker{knownID: userID}, &fakeProductLoader{products: products})
	if err != nil {
		panic(err)
	}
	return svc
}

func isCode(err error, code pkgerrors.Code) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == code
}

type fakeWishlistStore struct {
	items map[uuid.UUID][]uuid.UUID
}

func newFakeWishlistStore() *fakeWishlistStore {
	return &fakeWishlistStore{items: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeWishlistStore) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID{}, f.items[userID]...), nil
}

func (f *fakeWishlistStore) Contains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	for _, id := range f.items[userID] {
		if id == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWishlistStore) Add(ctx context.Context, userID, productID uuid.UUID) error {
	f.items[userID] = append(f.items[userID], productID)
	return nil
}

func (f *fakeWishlistStore) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	kept := f.items[userID][:0]
	for _, id := range f.items[userID] {
		if id != productID {
			kept = append(kept, id)
		}
	}
	f.items[userID] = kept
	return nil
}

type fakeUserChecker struct {
	knownID uuid.UUID
}

func (f *fakeUserChecker) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == f.knownID {
		return &models.User{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProductLoader struct {
	products []models.Product
}

func (f *fakeProductLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductLoader) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
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
