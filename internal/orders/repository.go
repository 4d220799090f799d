package order

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// Repository persists orders and their lines.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order and its lines. When tx is non-nil the insert
// joins that transaction.
func (r *Repository) CreateOrder(ctx context.Context, tx *gorm.DB, o *models.Order) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	return conn.WithContext(ctx).Create(o).Error
}

// FindByID loads an order with its lines, scoped to the seller.
func (r *Repository) FindByID(ctx context.Context, sellerID, orderID uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ? AND seller_id = ?", orderID, sellerID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns seller orders, optionally narrowed to one customer, newest
// first.
func (r *Repository) List(ctx context.Context, sellerID uuid.UUID, customerID *uuid.UUID) ([]models.Order, error) {
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}
	var orders []models.Order
	if err := query.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus persists a status change.
func (r *Repository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}
