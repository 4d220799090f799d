package pricetable

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// PriceTableDTO represents a price table with its override rows.
type PriceTableDTO struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Active    bool                `json:"active"`
	Items     []PriceTableItemDTO `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// PriceTableItemDTO is one override row of a price table.
type PriceTableItemDTO struct {
	ItemID     uuid.UUID       `json:"item_id"`
	FinalPrice decimal.Decimal `json:"final_price"`
}

// NewPriceTableDTO builds a DTO from the persisted model.
func NewPriceTableDTO(table *models.PriceTable) *PriceTableDTO {
	items := make([]PriceTableItemDTO, 0, len(table.Items))
	for _, row := range table.Items {
		items = append(items, PriceTableItemDTO{
			ItemID:     row.ItemID,
			FinalPrice: row.FinalPrice,
		})
	}
	return &PriceTableDTO{
		ID:        table.ID,
		Name:      table.Name,
		Active:    table.Active,
		Items:     items,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
}
