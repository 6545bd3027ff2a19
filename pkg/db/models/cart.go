package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/pkg/enums"
)

// Cart is the per-user mutable collection of line items. One Active cart
// exists per user at a time; an order consumes it by flipping status to Used.
type Cart struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index:carts_user_id_idx"`
	Status    enums.CartStatus `gorm:"column:status;not null;default:'Active'"`
	Items     []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
