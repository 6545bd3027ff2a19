package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/api/responses"
	"github.com/evermart/evermart-backend/api/validators"
	"github.com/evermart/evermart-backend/internal/catalog"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
	"github.com/evermart/evermart-backend/pkg/pagination"
	"github.com/evermart/evermart-backend/pkg/types"
)

const maxTitleSearchLen = 120

// ListProducts serves the filtered, sorted and paginated storefront catalog.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filters, err := listFiltersFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct returns a single catalog product.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// GetFacets returns the distinct filter values for a category scope.
func GetFacets(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		facets, err := svc.GetFacets(r.Context(), chi.URLParam(r, "category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, facets)
	}
}

// CreateProduct adds a product to the catalog.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type createProductRequest struct {
	Title              string              `json:"title" validate:"required"`
	Description        string              `json:"description" validate:"required"`
	Category           string              `json:"category" validate:"required"`
	Brand              string              `json:"brand"`
	Color              string              `json:"color"`
	Material           string              `json:"material"`
	Size               string              `json:"size"`
	Price              float64             `json:"price" validate:"required,gte=0"`
	DiscountPercentage float64             `json:"discount_percentage" validate:"gte=0,lte=100"`
	Stock              int                 `json:"stock" validate:"required,min=1"`
	Rating             float64             `json:"rating" validate:"gte=0,lte=5"`
	NumberOfOrders     int                 `json:"number_of_orders" validate:"gte=0"`
	Shipping           *types.ShippingInfo `json:"shipping"`
	Images             []string            `json:"images" validate:"required,min=1,dive,required"`
	IsFavorite         bool                `json:"is_favorite"`
}

func (r createProductRequest) toCreateInput() catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Title:              r.Title,
		Description:        r.Description,
		Category:           r.Category,
		Brand:              r.Brand,
		Color:              r.Color,
		Material:           r.Material,
		Size:               r.Size,
		Price:              r.Price,
		DiscountPercentage: r.DiscountPercentage,
		Stock:              r.Stock,
		Rating:             r.Rating,
		NumberOfOrders:     r.NumberOfOrders,
		Shipping:           r.Shipping,
		Images:             r.Images,
		IsFavorite:         r.IsFavorite,
	}
}

func listFiltersFromQuery(r *http.Request) (catalog.ListFilters, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return catalog.ListFilters{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return catalog.ListFilters{}, err
	}
	minPrice, err := validators.ParseQueryFloat(r, "minPrice")
	if err != nil {
		return catalog.ListFilters{}, err
	}
	maxPrice, err := validators.ParseQueryFloat(r, "maxPrice")
	if err != nil {
		return catalog.ListFilters{}, err
	}
	ratings, err := validators.ParseQueryFloatCSV(r, "ratings")
	if err != nil {
		return catalog.ListFilters{}, err
	}

	return catalog.ListFilters{
		Category: validators.SanitizeString(r.URL.Query().Get("category"), 0),
		Brands:   validators.ParseQueryCSV(r, "brands"),
		Colors:   validators.ParseQueryCSV(r, "colors"),
		Ratings:  ratings,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Title:    validators.SanitizeString(r.URL.Query().Get("title"), maxTitleSearchLen),
		Sort:     validators.SanitizeString(r.URL.Query().Get("sort"), 0),
		Page:     pagination.Params{Page: page, Limit: limit},
	}, nil
}
