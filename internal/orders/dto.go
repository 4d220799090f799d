package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/pkg/db/models"
)

// OrderDTO represents the order payload returned to clients.
type OrderDTO struct {
	ID         uuid.UUID      `json:"id"`
	SellerID   uuid.UUID      `json:"seller_id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	Status     string         `json:"status"`
	Total      decimal.Decimal `json:"total"`
	Notes      *string        `json:"notes,omitempty"`
	Items      []OrderItemDTO `json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// OrderItemDTO is one order line with its snapshotted unit price.
type OrderItemDTO struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, OrderItemDTO{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	return &OrderDTO{
		ID:         order.ID,
		SellerID:   order.SellerID,
		CustomerID: order.CustomerID,
		Status:     order.Status.String(),
		Total:      order.Total,
		Notes:      order.Notes,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
