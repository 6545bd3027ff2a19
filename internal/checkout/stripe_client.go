package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"

	pkgstripe "github.com/evermart/evermart-backend/pkg/stripe"
)

// SessionCreator exposes the subset of Stripe operations the checkout service needs.
type SessionCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripeSessionClient struct{}

// NewSessionClient wraps the shared Stripe client so the checkout service can be tested.
func NewSessionClient(api *pkgstripe.Client) SessionCreator {
	if api == nil {
		return nil
	}
	return &stripeSessionClient{}
}

func (c *stripeSessionClient) Create(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	if params != nil {
		params.Context = ctx
	}
	return session.New(params)
}
