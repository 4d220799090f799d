package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/orderhub-backend/pkg/enums"
)

// Order is a customer purchase. Total is the sum of line totals at creation
// time; line unit prices are snapshots and never re-resolved.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID   uuid.UUID         `gorm:"column:seller_id;type:uuid;not null"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status     enums.OrderStatus `gorm:"column:status;not null;default:pending"`
	Total      decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Notes      *string           `gorm:"column:notes"`
	Items      []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
