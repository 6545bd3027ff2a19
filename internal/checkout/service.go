package checkout

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/evermart/evermart-backend/pkg/config"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

const sessionCurrency = string(stripe.CurrencyUSD)

// Service starts hosted Stripe checkout sessions for a set of cart lines.
type Service interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*SessionDTO, error)
}

type service struct {
	sessions SessionCreator
	cfg      config.StripeConfig
	logg     *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(sessions SessionCreator, cfg config.StripeConfig, logg *logger.Logger) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("stripe session client required")
	}
	if strings.TrimSpace(cfg.SuccessURL) == "" || strings.TrimSpace(cfg.CancelURL) == "" {
		return nil, fmt.Errorf("stripe success and cancel urls required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{sessions: sessions, cfg: cfg, logg: logg}, nil
}

// CreateSession builds Stripe line items from the submitted products and opens
// a card payment session. Amounts are converted to cents at this boundary;
// everywhere else prices stay in major units.
func (s *service) CreateSession(ctx context.Context, input CreateSessionInput) (*SessionDTO, error) {
	if err := validateSessionInput(input); err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(s.cfg.SuccessURL),
		CancelURL:          stripe.String(s.cfg.CancelURL),
		LineItems:          buildLineItems(input.Products),
	}

	created, err := s.sessions.Create(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stripe: create checkout session")
	}

	s.logg.Info(s.logg.WithField(ctx, "stripe_session_id", created.ID), "checkout session created")

	return &SessionDTO{ID: created.ID, URL: created.URL}, nil
}

func buildLineItems(lines []LineItemInput) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(sessionCurrency),
			UnitAmount: stripe.Int64(toCents(line.Product.Price)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(line.Product.Title),
			},
		}
		if len(line.Product.Images) > 0 {
			priceData.ProductData.Images = stripe.StringSlice(line.Product.Images[:1])
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(int64(line.Quantity)),
		})
	}
	return items
}

// toCents rounds half away from zero, matching how the storefront displays prices.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func validateSessionInput(input CreateSessionInput) error {
	details := map[string]string{}
	if len(input.Products) == 0 {
		details["products"] = "at least one product is required"
	}
	for i, line := range input.Products {
		field := "products[" + strconv.Itoa(i) + "]"
		if line.Quantity < 1 {
			details[field+".quantity"] = "quantity must be at least 1"
		}
		if strings.TrimSpace(line.Product.Title) == "" {
			details[field+".product.title"] = "title is required"
		}
		if line.Product.Price <= 0 {
			details[field+".product.price"] = "price must be greater than zero"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout payload").WithDetails(details)
	}
	return nil
}
