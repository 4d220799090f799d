package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a sellable product in a seller catalog. BasePrice is the default
// price when no price table override applies.
type Item struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID       `gorm:"column:seller_id;type:uuid;not null"`
	Code        string          `gorm:"column:code;not null"`
	Description string          `gorm:"column:description;not null"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null;default:0"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	Seller      *Seller         `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
