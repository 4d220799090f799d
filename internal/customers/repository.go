package customer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// Repository persists customers.
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

// CreateCustomer inserts a new customer.
func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// UpdateCustomer saves all fields of the customer.
func (r *Repository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// FindByID loads a customer scoped to the seller.
func (r *Repository) FindByID(ctx context.Context, sellerID, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).
		First(&customer, "id = ? AND seller_id = ?", customerID, sellerID).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListBySeller returns the seller's customers ordered by name.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID, activeOnly bool) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var customers []models.Customer
	if err := query.Order("name asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdatePriceTable points the customer at a price table; nil clears the
// assignment.
func (r *Repository) UpdatePriceTable(ctx context.Context, customerID uuid.UUID, tableID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("price_table_id", tableID).Error
}
