package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/evermart/evermart-backend/pkg/enums"
	"github.com/evermart/evermart-backend/pkg/types"
)

// Product represents a catalog listing.
type Product struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title              string                `gorm:"column:title;not null"`
	Description        string                `gorm:"column:description;not null"`
	Category           enums.ProductCategory `gorm:"column:category"`
	Brand              string                `gorm:"column:brand"`
	Color              string                `gorm:"column:color"`
	Material           string                `gorm:"column:material"`
	Size               string                `gorm:"column:size"`
	Price              float64               `gorm:"column:price;not null"`
	DiscountPercentage float64               `gorm:"column:discount_percentage;not null;default:0"`
	Stock              int                   `gorm:"column:stock;not null"`
	Rating             float64               `gorm:"column:rating;not null;default:0"`
	NumberOfOrders     int                   `gorm:"column:number_of_orders;not null;default:0"`
	Shipping           *types.ShippingInfo   `gorm:"column:shipping;type:jsonb;serializer:json"`
	Images             pq.StringArray        `gorm:"column:images;type:text[];not null"`
	IsFavorite         bool                  `gorm:"column:is_favorite;not null;default:false"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
