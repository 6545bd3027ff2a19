package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/pkg/enums"
)

// Order is an immutable-once-created snapshot of purchased line items. Only
// the status column changes after insert, via the status-update operation.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:orders_user_id_idx"`
	CartID          uuid.UUID         `gorm:"column:cart_id;type:uuid;not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	TotalPrice      float64           `gorm:"column:total_price;not null"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'Pending'"`
	Products        []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
