package pricetable

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// Repository persists price tables and their override rows.
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

// CreateTable inserts a new price table.
func (r *Repository) CreateTable(ctx context.Context, table *models.PriceTable) error {
	return r.db.WithContext(ctx).Create(table).Error
}

// UpdateTable saves name/active mutations.
func (r *Repository) UpdateTable(ctx context.Context, table *models.PriceTable) error {
	return r.db.WithContext(ctx).
		Model(&models.PriceTable{}).
		Where("id = ?", table.ID).
		Updates(map[string]any{"name": table.Name, "active": table.Active}).Error
}

// FindByID loads a table with its override rows, scoped to the seller.
func (r *Repository) FindByID(ctx context.Context, sellerID, tableID uuid.UUID) (*models.PriceTable, error) {
	var table models.PriceTable
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&table, "id = ? AND seller_id = ?", tableID, sellerID).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// ListBySeller returns all price tables of the seller without override rows.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.PriceTable, error) {
	var tables []models.PriceTable
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("name asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// UpsertItem writes an override row, replacing the final price when the
// (table, item) pair already exists.
func (r *Repository) UpsertItem(ctx context.Context, row *models.PriceTableItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "price_table_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"final_price", "updated_at"}),
		}).
		Create(row).Error
}

// RemoveItem deletes an override row.
func (r *Repository) RemoveItem(ctx context.Context, tableID, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("price_table_id = ? AND item_id = ?", tableID, itemID).
		Delete(&models.PriceTableItem{}).Error
}
