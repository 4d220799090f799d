package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/orderhub/orderhub-backend/api/middleware"
	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	customersvc "github.com/orderhub/orderhub-backend/internal/customers"
	"github.com/orderhub/orderhub-backend/pkg/enums"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type createCustomerRequest struct {
	Name       string  `json:"name" validate:"required"`
	Document   string  `json:"document" validate:"required"`
	PersonType string  `json:"person_type" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
}

type updateCustomerRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// CreateCustomer registers a buyer under the authenticated seller.
func CreateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		personType, err := enums.ParsePersonType(strings.TrimSpace(payload.PersonType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid person type"))
			return
		}

		customer, err := svc.CreateCustomer(r.Context(), sellerID, customersvc.CreateCustomerInput{
			Name:       payload.Name,
			Document:   payload.Document,
			PersonType: personType,
			Phone:      payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// UpdateCustomer applies a partial update. The document is immutable.
func UpdateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.UpdateCustomer(r.Context(), sellerID, customerID, customersvc.UpdateCustomerInput{
			Name:   payload.Name,
			Phone:  payload.Phone,
			Active: payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// GetCustomer fetches one buyer scoped to the authenticated seller.
func GetCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.GetCustomer(r.Context(), sellerID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// ListCustomers lists buyers of the authenticated seller.
func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customers, err := svc.ListCustomers(r.Context(), sellerID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customers)
	}
}

// DeactivateCustomer soft-removes a buyer.
func DeactivateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "customerId"), "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateCustomer(r.Context(), sellerID, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
