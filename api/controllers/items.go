package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/api/middleware"
	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	catalogsvc "github.com/orderhub/orderhub-backend/internal/catalog"
	"github.com/orderhub/orderhub-backend/internal/pricing"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type createItemRequest struct {
	Code        string          `json:"code" validate:"required"`
	Description string          `json:"description" validate:"required"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

type updateItemRequest struct {
	Code        *string          `json:"code,omitempty"`
	Description *string          `json:"description,omitempty"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// CreateItem adds a catalog item under the authenticated seller.
func CreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), sellerID, catalogsvc.CreateItemInput{
			Code:        payload.Code,
			Description: payload.Description,
			BasePrice:   payload.BasePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateItem applies a partial update to an item.
func UpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), sellerID, itemID, catalogsvc.UpdateItemInput{
			Code:        payload.Code,
			Description: payload.Description,
			BasePrice:   payload.BasePrice,
			Active:      payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// GetItem fetches one item scoped to the authenticated seller. Customer
// tokens get their effective price merged in.
func GetItem(svc catalogsvc.Service, resolver priceResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), sellerID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if customerID, isCustomer := middleware.CustomerIDFromContext(r.Context()); isCustomer {
			items := []catalogsvc.ItemDTO{*item}
			if err := mergeCustomerPrices(r.Context(), resolver, sellerID, customerID, items); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			item = &items[0]
		}

		responses.WriteSuccess(w, item)
	}
}

// ListItems lists catalog items. Customers get the active subset only, with
// their effective price merged into each entry.
func ListItems(svc catalogsvc.Service, resolver priceResolver, logg *logger.Logger) http.HandlerFunc {
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
		customerID, isCustomer := middleware.CustomerIDFromContext(r.Context())
		if isCustomer {
			activeOnly = true
		}

		items, err := svc.ListItems(r.Context(), sellerID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if isCustomer {
			if err := mergeCustomerPrices(r.Context(), resolver, sellerID, customerID, items); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, items)
	}
}

// mergeCustomerPrices sets each item's effective price from the resolver.
// Items the resolver omits keep their base price.
func mergeCustomerPrices(ctx context.Context, resolver priceResolver, sellerID, customerID uuid.UUID, items []catalogsvc.ItemDTO) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	prices, err := resolver.ResolvePrices(ctx, pricing.Scope{SellerID: sellerID, CustomerID: &customerID}, ids)
	if err != nil {
		return err
	}

	for i := range items {
		price := items[i].BasePrice
		if info, ok := prices[items[i].ID]; ok {
			price = info.Price
		}
		items[i].Price = &price
	}
	return nil
}

// DeactivateItem soft-removes an item from the catalog.
func DeactivateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemId"), "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateItem(r.Context(), sellerID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
