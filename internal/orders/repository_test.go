package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  cart_id TEXT NOT NULL,
  shipping_address TEXT NOT NULL DEFAULT '',
  total_price REAL NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'Pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func TestRepositoryCreateAndListByUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first, err := repo.Create(ctx, &models.Order{
		UserID:          userID,
		CartID:          uuid.New(),
		ShippingAddress: "1 Main St",
		TotalPrice:      45,
		Status:          enums.OrderStatusPending,
		Products: []models.OrderLineItem{
			{ProductID: uuid.New(), Quantity: 5},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)
	for _, line := range first.Products {
		assert.Equal(t, first.ID, line.OrderID)
	}

	_, err = repo.Create(ctx, &models.Order{
		UserID:     userID,
		CartID:     uuid.New(),
		TotalPrice: 10,
		Status:     enums.OrderStatusPending,
		Products:   []models.OrderLineItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, order := range got {
		assert.NotEmpty(t, order.Products)
	}

	other, err := repo.ListByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRepositoryCreateRollsBackOnLineItemFailure(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// make the line item insert fail after the order row insert succeeds
	require.NoError(t, db.Exec(`DROP TABLE order_line_items`).Error)

	userID := uuid.New()
	_, err := repo.Create(ctx, &models.Order{
		UserID:     userID,
		CartID:     uuid.New(),
		TotalPrice: 10,
		Status:     enums.OrderStatusPending,
		Products:   []models.OrderLineItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Zero(t, count, "order row must not survive a failed line item insert")
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{
		UserID:     uuid.New(),
		CartID:     uuid.New(),
		TotalPrice: 10,
		Status:     enums.OrderStatusDelivered,
		Products:   []models.OrderLineItem{{ProductID: uuid.New(), Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, created.ID, enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, updated.Status)
	assert.Len(t, updated.Products, 1)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, reloaded.Status)

	_, err = repo.UpdateStatus(ctx, uuid.New(), enums.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
