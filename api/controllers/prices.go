package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/api/middleware"
	"github.com/orderhub/orderhub-backend/api/responses"
	"github.com/orderhub/orderhub-backend/api/validators"
	"github.com/orderhub/orderhub-backend/internal/pricing"
	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
	"github.com/orderhub/orderhub-backend/pkg/logger"
)

type resolvePricesRequest struct {
	// CustomerID lets seller tokens preview a customer's effective prices.
	// Customer tokens always resolve against their own assignment.
	CustomerID *string  `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	ItemIDs    []string `json:"item_ids" validate:"required,dive,uuid"`
}

type priceResolver interface {
	ResolvePrices(ctx context.Context, scope pricing.Scope, itemIDs []uuid.UUID) (map[uuid.UUID]pricing.PriceInfo, error)
}

// ResolvePrices returns the effective unit price for each requested item.
// Items unknown to the scope are omitted from the response.
func ResolvePrices(resolver priceResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellerID, ok := middleware.SellerIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context missing"))
			return
		}

		var payload resolvePricesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		scope := pricing.Scope{SellerID: sellerID}
		if customerID, isCustomer := middleware.CustomerIDFromContext(r.Context()); isCustomer {
			scope.CustomerID = &customerID
		} else if payload.CustomerID != nil {
			customerID, err := validators.ParsePathUUID(*payload.CustomerID, "customer_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			scope.CustomerID = &customerID
		}

		itemIDs := make([]uuid.UUID, 0, len(payload.ItemIDs))
		for _, raw := range payload.ItemIDs {
			id, err := validators.ParsePathUUID(raw, "item_ids")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			itemIDs = append(itemIDs, id)
		}

		prices, err := resolver.ResolvePrices(r.Context(), scope, itemIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"prices": prices})
	}
}
