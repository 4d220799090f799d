package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/api/middleware"
	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	ordersvc "github.com/orderhub/orderhub-backend/internal/orders"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type orderLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	// CustomerID is required for seller tokens and ignored for customer
	// tokens, which always order for themselves.
	CustomerID *string            `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Lines      []orderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Notes      *string            `json:"notes,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateOrder places an order with prices snapshotted at creation time.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, ok := middleware.CustomerIDFromContext(r.Context())
		if !ok {
			if payload.CustomerID == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer_id is required"))
				return
			}
			var err error
			customerID, err = validators.ParsePathUUID(*payload.CustomerID, "customer_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		lines := make([]ordersvc.OrderLineInput, 0, len(payload.Lines))
		for _, line := range payload.Lines {
			itemID, err := validators.ParsePathUUID(line.ItemID, "item_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			lines = append(lines, ordersvc.OrderLineInput{ItemID: itemID, Quantity: line.Quantity})
		}

		order, err := svc.CreateOrder(r.Context(), sellerID, customerID, ordersvc.CreateOrderInput{
			Lines: lines,
			Notes: payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// GetOrder fetches one order. Customer tokens only see their own.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var customerScope *uuid.UUID
		if customerID, isCustomer := middleware.CustomerIDFromContext(r.Context()); isCustomer {
			customerScope = &customerID
		}

		order, err := svc.GetOrder(r.Context(), sellerID, orderID, customerScope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ListOrders lists orders for the tenant, narrowed for customer tokens.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var customerScope *uuid.UUID
		if customerID, isCustomer := middleware.CustomerIDFromContext(r.Context()); isCustomer {
			customerScope = &customerID
		} else if raw := strings.TrimSpace(r.URL.Query().Get("customer_id")); raw != "" {
			customerID, err := validators.ParsePathUUID(raw, "customer_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			customerScope = &customerID
		}

		orders, err := svc.ListOrders(r.Context(), sellerID, customerScope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

// UpdateOrderStatus moves a pending order to cancelled or delivered.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), sellerID, orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
