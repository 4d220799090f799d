package seller

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// SellerDTO represents the seller payload returned to clients.
type SellerDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Document   string    `json:"document"`
	PersonType string    `json:"person_type"`
	Phone      *string   `json:"phone,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSellerDTO builds a DTO from the persisted model.
func NewSellerDTO(seller *models.Seller) *SellerDTO {
	return &SellerDTO{
		ID:         seller.ID,
		Name:       seller.Name,
		Document:   seller.Document,
		PersonType: seller.PersonType.String(),
		Phone:      seller.Phone,
		Active:     seller.Active,
		CreatedAt:  seller.CreatedAt,
		UpdatedAt:  seller.UpdatedAt,
	}
}
