package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/api/middleware"
	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	pricetablesvc "github.com/orderhub/orderhub-backend/internal/pricetables"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type createPriceTableRequest struct {
	Name string `json:"name" validate:"required"`
}

type updatePriceTableRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

type setItemPriceRequest struct {
	// A zero final price keeps the row but makes the item fall back to its
	// base price.
	FinalPrice decimal.Decimal `json:"final_price"`
}

type assignCustomerRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
}

// CreatePriceTable creates an empty table for the authenticated seller.
func CreatePriceTable(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var payload createPriceTableRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.CreateTable(r.Context(), sellerID, payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, table)
	}
}

// UpdatePriceTable renames or toggles a table.
func UpdatePriceTable(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tableID, err := validators.ParsePathUUID(chi.URLParam(r, "tableId"), "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePriceTableRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.UpdateTable(r.Context(), sellerID, tableID, pricetablesvc.UpdateTableInput{
			Name:   payload.Name,
			Active: payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, table)
	}
}

// GetPriceTable returns a table with its override rows.
func GetPriceTable(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tableID, err := validators.ParsePathUUID(chi.URLParam(r, "tableId"), "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.GetTable(r.Context(), sellerID, tableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, table)
	}
}

// ListPriceTables lists tables of the authenticated seller.
func ListPriceTables(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tables, err := svc.ListTables(r.Context(), sellerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}

// SetPriceTableItem upserts an override row for an item.
func SetPriceTableItem(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tableID, err := validators.ParsePathUUID(chi.URLParam(r, "tableId"), "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setItemPriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetItemPrice(r.Context(), sellerID, tableID, itemID, payload.FinalPrice); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "price set"})
	}
}

// RemovePriceTableItem deletes an override row.
func RemovePriceTableItem(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tableID, err := validators.ParsePathUUID(chi.URLParam(r, "tableId"), "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveItemPrice(r.Context(), sellerID, tableID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "price removed"})
	}
}

// AssignPriceTableCustomer points a customer at a table.
func AssignPriceTableCustomer(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		tableID, err := validators.ParsePathUUID(chi.URLParam(r, "tableId"), "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParsePathUUID(payload.CustomerID, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AssignCustomer(r.Context(), sellerID, tableID, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "customer assigned"})
	}
}

// UnassignPriceTableCustomer clears a customer's table so base prices apply.
func UnassignPriceTableCustomer(svc pricetablesvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.UnassignCustomer(r.Context(), sellerID, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "customer unassigned"})
	}
}
