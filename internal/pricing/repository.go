package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// customerPriceQuery joins the customer's assigned price table (when active)
// onto the seller catalog. Items outside the customer's seller never match.
const customerPriceQuery = `
SELECT i.id AS item_id,
       i.code,
       i.description,
       pti.final_price,
       i.base_price
FROM customers c
JOIN items i ON i.seller_id = c.seller_id
LEFT JOIN price_tables pt
       ON pt.id = c.price_table_id AND pt.active = TRUE
LEFT JOIN price_table_items pti
       ON pti.price_table_id = pt.id AND pti.item_id = i.id
WHERE c.id = ?
  AND c.seller_id = ?
  AND i.id IN ?
  AND i.active = TRUE
`

// basePriceQuery serves seller-scoped resolution: catalog prices only.
const basePriceQuery = `
SELECT i.id AS item_id,
       i.code,
       i.description,
       NULL AS final_price,
       i.base_price
FROM items i
WHERE i.seller_id = ?
  AND i.id IN ?
  AND i.active = TRUE
`

// Repository loads pricing rows from the database.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListPriceRows fetches pricing rows for the batch in one query.
func (r *Repository) ListPriceRows(ctx context.Context, scope Scope, itemIDs []uuid.UUID) ([]PriceRow, error) {
	var rows []PriceRow
	tx := r.db.WithContext(ctx)
	if scope.CustomerID != nil {
		if err := tx.Raw(customerPriceQuery, *scope.CustomerID, scope.SellerID, itemIDs).Scan(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}
	if err := tx.Raw(basePriceQuery, scope.SellerID, itemIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
