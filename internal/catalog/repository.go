package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/evermart/evermart-backend/pkg/db/models"
	"github.com/evermart/evermart-backend/pkg/pagination"
)

// SortBestRated and SortLatest are the accepted list orderings.
const (
	SortBestRated = "bestrated"
	SortLatest    = "latest"
)

// ListFilters narrows the catalog query. Zero values mean "no filter".
type ListFilters struct {
	Category string
	Brands   []string
	Colors   []string
	Ratings  []float64
	MinPrice *float64
	MaxPrice *float64
	Title    string
	Sort     string
	Page     pagination.Params
}

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads all products matching the provided IDs.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List returns one page of products plus the total row count for the filters.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, int64, error) {
	base := r.applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), filters)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Product{}), filters)
	switch filters.Sort {
	case SortBestRated:
		query = query.Order("rating DESC")
	case SortLatest:
		query = query.Order("created_at DESC")
	}

	page := pagination.Normalize(filters.Page)
	query = query.Offset(page.Offset()).Limit(page.Limit)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Facets returns the distinct categories, brands, colors, and ratings within
// the category scope. An empty category means the whole catalog.
func (r *Repository) Facets(ctx context.Context, category string) (*FacetsDTO, error) {
	scope := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&models.Product{})
		if category != "" {
			query = query.Where("category = ?", category)
		}
		return query
	}

	facets := &FacetsDTO{
		Categories: []string{},
		Brands:     []string{},
		Colors:     []string{},
		Ratings:    []float64{},
	}
	if err := scope().Distinct("category").Order("category").Pluck("category", &facets.Categories).Error; err != nil {
		return nil, err
	}
	if err := scope().Distinct("brand").Order("brand").Pluck("brand", &facets.Brands).Error; err != nil {
		return nil, err
	}
	if err := scope().Distinct("color").Order("color").Pluck("color", &facets.Colors).Error; err != nil {
		return nil, err
	}
	if err := scope().Distinct("rating").Order("rating").Pluck("rating", &facets.Ratings).Error; err != nil {
		return nil, err
	}
	return facets, nil
}

// UpdateRatingAndOrders persists the denormalized aggregates after an order.
func (r *Repository) UpdateRatingAndOrders(ctx context.Context, id uuid.UUID, numberOfOrders int) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("number_of_orders", numberOfOrders).
		Error
}

func (r *Repository) applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if len(filters.Brands) > 0 {
		query = query.Where("brand IN ?", filters.Brands)
	}
	if len(filters.Colors) > 0 {
		query = query.Where("color IN ?", filters.Colors)
	}
	if len(filters.Ratings) > 0 {
		query = query.Where("rating IN ?", filters.Ratings)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if title := strings.TrimSpace(filters.Title); title != "" {
		pattern := "%" + strings.ToLower(title) + "%"
		query = query.Where("LOWER(title) LIKE ?", pattern)
	}
	return query
}
