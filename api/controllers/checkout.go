package controllers

import (
	"net/http"

	"github.com/evermart/evermart-backend/api/responses"
	"github.com/evermart/evermart-backend/api/validators"
	"github.com/evermart/evermart-backend/internal/checkout"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

// CreateCheckoutSession opens a hosted Stripe payment page for the submitted lines.
func CreateCheckoutSession(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload createCheckoutSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CreateSession(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

type checkoutProductRequest struct {
	Title  string   `json:"title" validate:"required"`
	Price  float64  `json:"price" validate:"required,gte=0"`
	Images []string `json:"images"`
}

type checkoutLineRequest struct {
	Quantity int                    `json:"quantity" validate:"required,min=1"`
	Product  checkoutProductRequest `json:"product" validate:"required"`
}

type createCheckoutSessionRequest struct {
	Products []checkoutLineRequest `json:"products" validate:"required,min=1,dive"`
}

func (r createCheckoutSessionRequest) toCreateInput() checkout.CreateSessionInput {
	lines := make([]checkout.LineItemInput, 0, len(r.Products))
	for _, line := range r.Products {
		lines = append(lines, checkout.LineItemInput{
			Quantity: line.Quantity,
			Product: checkout.LineProductInput{
				Title:  line.Product.Title,
				Price:  line.Product.Price,
				Images: line.Product.Images,
			},
		})
	}
	return checkout.CreateSessionInput{Products: lines}
}
