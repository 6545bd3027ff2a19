package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/evermart/evermart-backend/api/responses"
	"github.com/evermart/evermart-backend/api/validators"
	"github.com/evermart/evermart-backend/internal/orders"
	pkgerrors "github.com/evermart/evermart-backend/pkg/errors"
	"github.com/evermart/evermart-backend/pkg/logger"
)

// ListOrders returns the user's order history, newest first.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := validators.ParseQueryUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.ListOrders(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}

// CreateOrder places an order from the submitted cart snapshot.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// UpdateOrderStatus moves an order to the requested status.
func UpdateOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), orderID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type orderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	UserID          uuid.UUID          `json:"user_id" validate:"required"`
	CartID          uuid.UUID          `json:"cart_id" validate:"required"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	TotalPrice      float64            `json:"total_price" validate:"gte=0"`
	Products        []orderLineRequest `json:"products" validate:"required,min=1,dive"`
}

func (r createOrderRequest) toCreateInput() orders.CreateOrderInput {
	lines := make([]orders.OrderLineInput, 0, len(r.Products))
	for _, line := range r.Products {
		lines = append(lines, orders.OrderLineInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return orders.CreateOrderInput{
		UserID:          r.UserID,
		CartID:          r.CartID,
		ShippingAddress: r.ShippingAddress,
		TotalPrice:      r.TotalPrice,
		Products:        lines,
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
