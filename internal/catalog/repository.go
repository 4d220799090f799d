package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// Repository persists catalog items.
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

// CreateItem inserts a new item.
func (r *Repository) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItem saves all fields of the item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByID loads an item scoped to the seller.
func (r *Repository) FindByID(ctx context.Context, sellerID, itemID uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).
		First(&item, "id = ? AND seller_id = ?", itemID, sellerID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListBySeller returns the seller catalog ordered by code. When activeOnly is
// set, deactivated items are filtered out.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Item, error) {
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var items []models.Item
	if err := query.Order("code asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
