package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// ItemDTO represents the catalog item payload returned to clients. Price is
// the effective price for the requesting customer; it is absent on
// seller-facing views, which see BasePrice directly.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Description string           `json:"description"`
	BasePrice   decimal.Decimal  `json:"base_price"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewItemDTO builds a DTO from the persisted model.
func NewItemDTO(item *models.Item) *ItemDTO {
	return &ItemDTO{
		ID:          item.ID,
		Code:        item.Code,
		Description: item.Description,
		BasePrice:   item.BasePrice,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
