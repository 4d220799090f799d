package seller

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// Repository persists sellers.
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

// CreateSeller inserts a new seller.
func (r *Repository) CreateSeller(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

// UpdateSeller saves all fields of the seller.
func (r *Repository) UpdateSeller(ctx context.Context, seller *models.Seller) error {
	return r.db.WithContext(ctx).Save(seller).Error
}

// FindByID loads a seller.
func (r *Repository) FindByID(ctx context.Context, sellerID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).First(&seller, "id = ?", sellerID).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

// List returns all sellers ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Seller, error) {
	var sellers []models.Seller
	if err := r.db.WithContext(ctx).Order("name asc").Find(&sellers).Error; err != nil {
		return nil, err
	}
	return sellers, nil
}
