package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evermart/evermart-backend/internal/checkout"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
)

type stubCheckoutService struct {
	lastInput checkout.CreateSessionInput
	session   *checkout.SessionDTO
	err       error
}

func (s *stubCheckoutService) CreateSession(_ context.Context, input checkout.CreateSessionInput) (*checkout.SessionDTO, error) {
	s.lastInput = input
	return s.session, s.err
}

func TestCreateCheckoutSessionSuccess(t *testing.T) {
	stub := &stubCheckoutService{session: &checkout.SessionDTO{ID: "cs_test_123"}}

	body := `{"products":[{"quantity":2,"product":{"title":"Lamp","price":35.5,"images":["https://cdn.example.com/a.png"]}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateCheckoutSession(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(stub.lastInput.Products) != 1 || stub.lastInput.Products[0].Product.Title != "Lamp" {
		t.Fatalf("input = %+v", stub.lastInput)
	}
	if !strings.Contains(rec.Body.String(), "cs_test_123") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateCheckoutSessionRequiresProducts(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(`{"products":[]}`))
	rec := httptest.NewRecorder()
	CreateCheckoutSession(&stubCheckoutService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateCheckoutSessionStripeOutage(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeDependency, "stripe: create checkout session")}

	body := `{"products":[{"quantity":1,"product":{"title":"Lamp","price":10}}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateCheckoutSession(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}
