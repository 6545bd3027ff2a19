package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/types"
)

// ProductDTO represents the catalog payload returned to clients.
type ProductDTO struct {
	ID                 uuid.UUID           `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Category           string              `json:"category"`
	Brand              string              `json:"brand,omitempty"`
	Color              string              `json:"color,omitempty"`
	Material           string              `json:"material,omitempty"`
	Size               string              `json:"size,omitempty"`
	Price              float64             `json:"price"`
	DiscountPercentage float64             `json:"discount_percentage"`
	DiscountedPrice    float64             `json:"discounted_price"`
	Stock              int                 `json:"stock"`
	Rating             float64             `json:"rating"`
	NumberOfOrders     int                 `json:"number_of_orders"`
	Shipping           *types.ShippingInfo `json:"shipping,omitempty"`
	Images             []string            `json:"images"`
	IsFavorite         bool                `json:"is_favorite"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ProductListResult bundles one page of products with the filtered total.
type ProductListResult struct {
	TotalCount int64        `json:"total_count"`
	Products   []ProductDTO `json:"products"`
}

// FacetsDTO surfaces the distinct filter values within a category scope.
type FacetsDTO struct {
	Categories []string  `json:"categories"`
	Brands     []string  `json:"brands"`
	Colors     []string  `json:"colors"`
	Ratings    []float64 `json:"ratings"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product, discountedPrice float64) ProductDTO {
	return ProductDTO{
		ID:                 product.ID,
		Title:              product.Title,
		Description:        product.Description,
		Category:           product.Category.String(),
		Brand:              product.Brand,
		Color:              product.Color,
		Material:           product.Material,
		Size:               product.Size,
		Price:              product.Price,
		DiscountPercentage: product.DiscountPercentage,
		DiscountedPrice:    discountedPrice,
		Stock:              product.Stock,
		Rating:             product.Rating,
		NumberOfOrders:     product.NumberOfOrders,
		Shipping:           product.Shipping,
		Images:             append([]string{}, product.Images...),
		IsFavorite:         product.IsFavorite,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
}
