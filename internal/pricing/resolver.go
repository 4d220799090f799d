package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/orderhub/orderhub-backend/pkg/errors"
)

// Scope identifies whose prices are being resolved. SellerID is always
// required; CustomerID is nil when resolving catalog (base) prices.
type Scope struct {
	SellerID   uuid.UUID
	CustomerID *uuid.UUID
}

// Store loads pricing rows for a batch of items in a single query.
type Store interface {
	ListPriceRows(ctx context.Context, scope Scope, itemIDs []uuid.UUID) ([]PriceRow, error)
}

// Resolver computes effective prices. The override rule: a price table row
// with a non-zero final price wins; a zero or missing override falls through
// to the item base price. Items the store does not return (unknown, inactive,
// or belonging to another seller) are silently omitted from the result.
type Resolver struct {
	store Store
}

// NewResolver constructs a price resolver.
func NewResolver(store Store) (*Resolver, error) {
	if store == nil {
		return nil, fmt.Errorf("pricing store required")
	}
	return &Resolver{store: store}, nil
}

// ResolvePrices resolves effective prices for the requested items. Duplicate
// IDs are collapsed; an empty request returns an empty map without touching
// the store.
func (r *Resolver) ResolvePrices(ctx context.Context, scope Scope, itemIDs []uuid.UUID) (map[uuid.UUID]PriceInfo, error) {
	if scope.SellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "seller scope is required")
	}
	if scope.CustomerID != nil && *scope.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id cannot be empty")
	}

	unique := dedupe(itemIDs)
	if len(unique) == 0 {
		return map[uuid.UUID]PriceInfo{}, nil
	}

	rows, err := r.store.ListPriceRows(ctx, scope, unique)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading price rows")
	}

	resolved := make(map[uuid.UUID]PriceInfo, len(rows))
	for _, row := range rows {
		price := row.BasePrice
		if row.FinalPrice.Valid && !row.FinalPrice.Decimal.IsZero() {
			price = row.FinalPrice.Decimal
		}
		resolved[row.ItemID] = PriceInfo{
			ItemID:      row.ItemID,
			Code:        row.Code,
			Description: row.Description,
			Price:       price,
		}
	}
	return resolved, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
