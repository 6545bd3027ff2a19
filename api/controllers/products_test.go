package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/internal/catalog"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
	"github.com/evermart/evermart-backend/pkg/types"
)

type stubCatalogService struct {
	lastFilters  catalog.ListFilters
	lastInput    catalog.CreateProductInput
	lastFacetArg string
	listResult   *catalog.ProductListResult
	product      *catalog.ProductDTO
	facets       *catalog.FacetsDTO
	err          error
}

func (s *stubCatalogService) CreateProduct(_ context.Context, input catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	s.lastInput = input
	return s.product, s.err
}

func (s *stubCatalogService) GetProduct(_ context.Context, id uuid.UUID) (*catalog.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ListProducts(_ context.Context, filters catalog.ListFilters) (*catalog.ProductListResult, error) {
	s.lastFilters = filters
	return s.listResult, s.err
}

func (s *stubCatalogService) GetFacets(_ context.Context, category string) (*catalog.FacetsDTO, error) {
	s.lastFacetArg = category
	return s.facets, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func routeRequest(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestListProductsParsesQuery(t *testing.T) {
	stub := &stubCatalogService{listResult: &catalog.ProductListResult{TotalCount: 1, Products: []catalog.ProductDTO{{Title: "Lamp"}}}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?category=Electronics&brands=Sony,LG&ratings=4,4.5&minPrice=10&maxPrice=200&title=lamp&sort=latest&page=2&limit=5", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	f := stub.lastFilters
	if f.Category != "Electronics" || f.Title != "lamp" || f.Sort != "latest" {
		t.Fatalf("scalar filters = %+v", f)
	}
	if len(f.Brands) != 2 || f.Brands[1] != "LG" {
		t.Fatalf("brands = %v", f.Brands)
	}
	if len(f.Ratings) != 2 || f.Ratings[1] != 4.5 {
		t.Fatalf("ratings = %v", f.Ratings)
	}
	if f.MinPrice == nil || *f.MinPrice != 10 || f.MaxPrice == nil || *f.MaxPrice != 200 {
		t.Fatalf("price bounds = %v %v", f.MinPrice, f.MaxPrice)
	}
	if f.Page.Page != 2 || f.Page.Limit != 5 {
		t.Fatalf("page = %+v", f.Page)
	}
}

func TestListProductsRejectsBadNumbers(t *testing.T) {
	stub := &stubCatalogService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?minPrice=cheap", nil)
	rec := httptest.NewRecorder()
	ListProducts(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetProductInvalidID(t *testing.T) {
	req := routeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/products/nope", nil),
		map[string]string{"productId": "nope"})
	rec := httptest.NewRecorder()
	GetProduct(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetProductNotFound(t *testing.T) {
	stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	id := uuid.NewString()
	req := routeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil),
		map[string]string{"productId": id})
	rec := httptest.NewRecorder()
	GetProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetFacetsPassesCategoryScope(t *testing.T) {
	stub := &stubCatalogService{facets: &catalog.FacetsDTO{Categories: []string{"Electronics"}}}
	req := routeRequest(httptest.NewRequest(http.MethodGet, "/api/v1/products/details/all", nil),
		map[string]string{"category": "all"})
	rec := httptest.NewRecorder()
	GetFacets(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastFacetArg != "all" {
		t.Fatalf("facet scope = %q", stub.lastFacetArg)
	}
}

func TestCreateProductSuccess(t *testing.T) {
	stub := &stubCatalogService{product: &catalog.ProductDTO{Title: "Desk Lamp"}}

	body := `{
		"title": "Desk Lamp",
		"description": "Warm light",
		"category": "Electronics",
		"price": 35.5,
		"discount_percentage": 10,
		"stock": 4,
		"rating": 4.5,
		"shipping": {"type": "Free", "cost": 0},
		"images": ["https://cdn.example.com/lamp.png"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateProduct(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if stub.lastInput.Title != "Desk Lamp" || stub.lastInput.Stock != 4 {
		t.Fatalf("input = %+v", stub.lastInput)
	}
	if stub.lastInput.Shipping == nil || stub.lastInput.Shipping.Cost != 0 {
		t.Fatalf("shipping = %+v", stub.lastInput.Shipping)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestCreateProductRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"title":"x","bogus":true}`))
	rec := httptest.NewRecorder()
	CreateProduct(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
