package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stripe/stripe-go/v84"

	"github.com/evermart/evermart-backend/pkg/config"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

type stubSessionCreator struct {
	params  *stripe.CheckoutSessionParams
	session *stripe.CheckoutSession
	err     error
}

func (s *stubSessionCreator) Create(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.params = params
	if s.err != nil {
		return nil, s.err
	}
	if s.session != nil {
		return s.session, nil
	}
	return &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/cs_test_123"}, nil
}

func newTestService(t *testing.T, sessions SessionCreator) Service {
	t.Helper()
	cfg := config.StripeConfig{
		SuccessURL: "https://shop.example.com/success",
		CancelURL:  "https://shop.example.com/cancel",
	}
	svc, err := NewService(sessions, cfg, logger.New(logger.Options{ServiceName: "checkout-test"}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func isCode(err error, code pkgerrors.Code) bool {
	coded := pkgerrors.As(err)
	return coded != nil && coded.Code() == code
}

func TestCreateSessionBuildsLineItems(t *testing.T) {
	t.Parallel()

	creator := &stubSessionCreator{}
	svc := newTestService(t, creator)

	dto, err := svc.CreateSession(context.Background(), CreateSessionInput{
		Products: []LineItemInput{
			{
				Quantity: 2,
				Product: LineProductInput{
					Title:  "Wireless Headphones",
					Price:  49.99,
					Images: []string{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
				},
			},
			{
				Quantity: 1,
				Product:  LineProductInput{Title: "USB-C Cable", Price: 7.005},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if dto.ID != "cs_test_123" {
		t.Fatalf("session id = %q", dto.ID)
	}
	if dto.URL == "" {
		t.Fatal("expected redirect url")
	}

	params := creator.params
	if params == nil {
		t.Fatal("expected stripe params to be recorded")
	}
	if got := stripe.StringValue(params.Mode); got != string(stripe.CheckoutSessionModePayment) {
		t.Fatalf("mode = %q", got)
	}
	if got := stripe.StringValue(params.SuccessURL); got != "https://shop.example.com/success" {
		t.Fatalf("success url = %q", got)
	}
	if len(params.LineItems) != 2 {
		t.Fatalf("line items = %d", len(params.LineItems))
	}

	first := params.LineItems[0]
	if got := stripe.Int64Value(first.Quantity); got != 2 {
		t.Fatalf("quantity = %d", got)
	}
	if got := stripe.Int64Value(first.PriceData.UnitAmount); got != 4999 {
		t.Fatalf("unit amount = %d", got)
	}
	if got := stripe.StringValue(first.PriceData.ProductData.Name); got != "Wireless Headphones" {
		t.Fatalf("product name = %q", got)
	}
	if got := len(first.PriceData.ProductData.Images); got != 1 {
		t.Fatalf("expected only the first image, got %d", got)
	}

	second := params.LineItems[1]
	if got := stripe.Int64Value(second.PriceData.UnitAmount); got != 701 {
		t.Fatalf("rounded unit amount = %d", got)
	}
	if second.PriceData.ProductData.Images != nil {
		t.Fatal("expected no images for image-less product")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	t.Parallel()

	creator := &stubSessionCreator{}
	svc := newTestService(t, creator)

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{})
	if !isCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("empty payload err = %v", err)
	}

	_, err = svc.CreateSession(context.Background(), CreateSessionInput{
		Products: []LineItemInput{{Quantity: 0, Product: LineProductInput{Title: "", Price: -1}}},
	})
	if !isCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("bad line err = %v", err)
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("details type = %T", pkgerrors.As(err).Details())
	}
	for _, field := range []string{"products[0].quantity", "products[0].product.title", "products[0].product.price"} {
		if _, present := details[field]; !present {
			t.Fatalf("missing detail for %s", field)
		}
	}

	if creator.params != nil {
		t.Fatal("stripe must not be called on validation failure")
	}
}

func TestCreateSessionWrapsStripeFailure(t *testing.T) {
	t.Parallel()

	creator := &stubSessionCreator{err: errors.New("api down")}
	svc := newTestService(t, creator)

	_, err := svc.CreateSession(context.Background(), CreateSessionInput{
		Products: []LineItemInput{{Quantity: 1, Product: LineProductInput{Title: "Lamp", Price: 20}}},
	})
	if !isCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("stripe failure err = %v", err)
	}
}

func TestNewServiceRejectsMissingDeps(t *testing.T) {
	t.Parallel()

	logg := logger.New(logger.Options{ServiceName: "checkout-test"})
	cfg := config.StripeConfig{SuccessURL: "https://x/success", CancelURL: "https://x/cancel"}

	if _, err := NewService(nil, cfg, logg); err == nil {
		t.Fatal("expected error for nil session client")
	}
	if _, err := NewService(&stubSessionCreator{}, config.StripeConfig{}, logg); err == nil {
		t.Fatal("expected error for missing urls")
	}
	if _, err := NewService(&stubSessionCreator{}, cfg, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}
