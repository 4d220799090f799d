package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceTable is a named set of per-item price overrides owned by a seller.
// Inactive tables are ignored during price resolution.
type PriceTable struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID  uuid.UUID        `gorm:"column:seller_id;type:uuid;not null"`
	Name      string           `gorm:"column:name;not null"`
	Active    bool             `gorm:"column:active;not null;default:true"`
	Items     []PriceTableItem `gorm:"foreignKey:PriceTableID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
